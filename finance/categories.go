package finance

import (
	"context"
	"encoding/json"

	"github.com/so637/personal-budget-tracker-backend/models"

	"gorm.io/gorm/clause"
)

// CategoryInput is a category write payload. Absent fields are left alone on
// partial updates.
type CategoryInput struct {
	Name json.RawMessage `json:"name"`
}

func (in CategoryInput) apply(c *models.Category, partial bool) error {
	fe := FieldErrors{}
	switch {
	case in.Name == nil:
		if !partial {
			fe.Add("name", "This field is required.")
		}
	case isNull(in.Name):
		fe.Add("name", "This field may not be null.")
	default:
		var name string
		if fe.decodeField("name", in.Name, &name) {
			fe.check("name", name, "required,max=100")
			c.Name = name
		}
	}
	return fe.Err()
}

func (s *Store) ListCategories(ctx context.Context, userID uint) ([]models.Category, error) {
	out := make([]models.Category, 0)
	err := s.scoped(ctx, userID).Order("id").Find(&out).Error
	return out, storeErr("list categories", err)
}

func (s *Store) GetCategory(ctx context.Context, userID, id uint) (*models.Category, error) {
	var c models.Category
	if err := s.scoped(ctx, userID).First(&c, id).Error; err != nil {
		return nil, storeErr("get category", err)
	}
	return &c, nil
}

// CreateCategory stores a new category owned by userID.
func (s *Store) CreateCategory(ctx context.Context, userID uint, in CategoryInput) (*models.Category, error) {
	c := models.Category{UserID: userID}
	if err := in.apply(&c, false); err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, storeErr("create category", err)
	}
	return &c, nil
}

// UpdateCategory replaces (partial=false) or patches a category.
func (s *Store) UpdateCategory(ctx context.Context, userID, id uint, in CategoryInput, partial bool) (*models.Category, error) {
	c, err := s.GetCategory(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := in.apply(c, partial); err != nil {
		return nil, err
	}
	err = s.scoped(ctx, userID).Model(c).Omit(clause.Associations).Select("name").Updates(c).Error
	if err != nil {
		return nil, storeErr("update category", err)
	}
	return c, nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID, id uint) error {
	return s.deleteOwned(ctx, userID, id, &models.Category{}, "delete category")
}

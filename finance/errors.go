package finance

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrNotFound is returned for unknown ids and for rows owned by someone else.
var ErrNotFound = errors.New("not found")

// FieldErrors maps a JSON field name to the problems found with it.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return "invalid fields: " + strings.Join(keys, ", ")
}

// Err returns nil when no field was flagged.
func (fe FieldErrors) Err() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

var validate = validator.New()

// check runs a single validator tag against v and records failures under field.
func (fe FieldErrors) check(field string, v any, tag string) {
	var verrs validator.ValidationErrors
	if errors.As(validate.Var(v, tag), &verrs) {
		for _, e := range verrs {
			fe.Add(field, Message(e))
		}
	}
}

// Message renders a validator failure for API clients.
func Message(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", e.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", e.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(e.Value()))
	}
	return fmt.Sprintf("Failed on the %q rule.", e.Tag())
}

// FromValidation converts validator errors into FieldErrors keyed by the
// validator's field name (the JSON name when a tag name func is registered).
func FromValidation(errs validator.ValidationErrors) FieldErrors {
	fe := FieldErrors{}
	for _, e := range errs {
		fe.Add(e.Field(), Message(e))
	}
	return fe
}

// decodeField unmarshals a raw payload field, recording a failure under field.
func (fe FieldErrors) decodeField(field string, raw json.RawMessage, dst any) bool {
	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			fe.Add(field, fmt.Sprintf("Incorrect type. Expected %s, got %s.", typeErr.Type, typeErr.Value))
		} else {
			fe.Add(field, err.Error())
		}
		return false
	}
	return true
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}

// storeErr maps gorm's not-found to ErrNotFound and wraps everything else.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

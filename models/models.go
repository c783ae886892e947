package models

// All lists every table for AutoMigrate, parents first.
func All() []any {
	return []any{&User{}, &Category{}, &Transaction{}, &Budget{}, &RefreshToken{}}
}

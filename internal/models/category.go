package models

// Category is the DB row for an account item.
type Category struct {
	CategoryID string `db:"category_id"`
	Name       string `db:"name"`
	Widget     string `db:"widget"` // nullable
	AuditFields
}

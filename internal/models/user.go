package models

// User is the DB row for an authentication principal / user contractor.
type User struct {
	UserID       string `db:"user_id"`
	Username     string `db:"username"`
	Name         string `db:"name"`
	PasswordHash string `db:"password_hash"`
	AuditFields
}

// Office is the DB row for an office entity.
type Office struct {
	OfficeID string `db:"office_id"`
	Name     string `db:"name"`
	AuditFields
}

// Customer is the DB row for a customer entity.
type Customer struct {
	CustomerID string `db:"customer_id"`
	Name       string `db:"name"`
	AuditFields
}

package domain

// User is both an authentication principal and a contractor entity kind.
type User struct {
	UserID       string `json:"userID"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	AuditFields
}

// Office is an organizational unit that can own accounts and act as
// counter-party on transactions.
type Office struct {
	OfficeID string `json:"officeID"`
	Name     string `json:"name"`
	AuditFields
}

// Customer is an external counter-party entity.
type Customer struct {
	CustomerID string `json:"customerID"`
	Name       string `json:"name"`
	AuditFields
}

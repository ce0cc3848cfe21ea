package domain

// CategoryWidget selects which contractor entity kind a category's
// transactions must reference. Empty for untyped categories (pure transfers).
type CategoryWidget string

const (
	WidgetOffice   CategoryWidget = "OFFICE"
	WidgetCustomer CategoryWidget = "CUSTOMER"
	WidgetUser     CategoryWidget = "USER"
	WidgetNone     CategoryWidget = ""
)

// Category is an account item: the classification a transaction is filed under.
type Category struct {
	CategoryID string         `json:"categoryID"`
	Name       string         `json:"name"`
	Widget     CategoryWidget `json:"widget"`
	AuditFields
}

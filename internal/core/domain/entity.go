package domain

// EntityKind tags which kind of owning entity a polymorphic reference points at.
type EntityKind string

const (
	EntityOffice   EntityKind = "OFFICE"
	EntityCustomer EntityKind = "CUSTOMER"
	EntityUser     EntityKind = "USER"
)

// EntityRef is a polymorphic reference to an office, customer or user.
// The engine switches on Kind; there is no reflective dispatch.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// IsZero reports whether the reference is unset.
func (r EntityRef) IsZero() bool {
	return r.Kind == "" && r.ID == ""
}

// Contractor is the resolved counter-party view of an entity reference.
type Contractor struct {
	Ref  EntityRef `json:"ref"`
	Name string    `json:"name"`
}

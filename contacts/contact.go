package contacts

// Contact is a trusted person the user can alert. Phone keeps the user's
// original (trimmed) text, both for display and for the recipient list;
// the digit-only form is derived on demand for validation.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// DisplayName returns the contact's name, or a generic label when none
// was given.
func (c Contact) DisplayName() string {
	if c.Name == "" {
		return "Contact"
	}
	return c.Name
}

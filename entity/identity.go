package entity

// Identity is a signed-in user as reported by the identity provider.
type Identity struct {
	Subject string `json:"subject"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
}

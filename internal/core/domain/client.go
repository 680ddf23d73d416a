package domain

// Client is a person or account holder that deals are made with. Linking a
// client to a portal user via invite token is handled outside this service.
type Client struct {
	ClientID string `json:"clientID"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Comment  string `json:"comment"`
	IsActive bool   `json:"isActive"`
	AuditFields
}

package domain

import "time"

// Client represents a contracted company.
type Client struct {
	ID            string    `json:"id"`
	CompanyName   string    `json:"companyName"`
	CNPJ          string    `json:"cnpj,omitempty"`
	ContactPerson string    `json:"contactPerson"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// HasContract reports whether the client has a registered CNPJ,
// which the dashboard counts as a closed contract.
func (c Client) HasContract() bool {
	return c.CNPJ != ""
}

// CreateClientRequest is the payload for registering a client.
type CreateClientRequest struct {
	CompanyName   string `json:"companyName"`
	ContactPerson string `json:"contactPerson"`
	CNPJ          string `json:"cnpj,omitempty"`
}

// UpdateClientRequest is the payload for updating a client.
type UpdateClientRequest struct {
	CompanyName   string `json:"companyName,omitempty"`
	ContactPerson string `json:"contactPerson,omitempty"`
	CNPJ          string `json:"cnpj,omitempty"`
}

package domain

import "time"

// Owner is the authenticated tenant every ledger row hangs off. Provisioned
// on first login callback from the identity provider subject.
type Owner struct {
	ID        int32     `json:"id"`
	Auth0ID   string    `json:"-"`
	Email     string    `json:"email"`
	Name      *string   `json:"name,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type OwnerRepository interface {
	GetByID(id int32) (*Owner, error)
	GetByAuth0ID(auth0ID string) (*Owner, error)
	CreateOrGetByAuth0ID(auth0ID, email string, name *string) (*Owner, error)
}

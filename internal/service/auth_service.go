package service

import (
	"github.com/oseko/lendbook-backend/internal/domain"
)

// AuthService provisions owners from identity-provider callbacks
type AuthService struct {
	ownerRepo domain.OwnerRepository
}

// NewAuthService creates a new AuthService
func NewAuthService(ownerRepo domain.OwnerRepository) *AuthService {
	return &AuthService{ownerRepo: ownerRepo}
}

// HandleCallback creates the owner on first login, returns the existing one otherwise
func (s *AuthService) HandleCallback(auth0ID, email string, name *string) (*domain.Owner, error) {
	if auth0ID == "" || email == "" {
		return nil, domain.ErrInvalidInput
	}
	return s.ownerRepo.CreateOrGetByAuth0ID(auth0ID, email, name)
}

// GetOwnerByAuth0ID looks up the owner for an authenticated subject
func (s *AuthService) GetOwnerByAuth0ID(auth0ID string) (*domain.Owner, error) {
	return s.ownerRepo.GetByAuth0ID(auth0ID)
}

// GetOwnerByID looks up an owner by internal ID
func (s *AuthService) GetOwnerByID(id int32) (*domain.Owner, error) {
	return s.ownerRepo.GetByID(id)
}

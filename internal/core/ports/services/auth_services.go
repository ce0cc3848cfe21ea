package services

import (
	"context"

	"github.com/finoffice/finoffice_backend/internal/dto"
)

// AuthSvcFacade authenticates users and issues tokens.
type AuthSvcFacade interface {
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// Register creates a new login principal with a hashed password.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finoffice/finoffice_backend/internal/apperrors"
	"github.com/finoffice/finoffice_backend/internal/core/domain"
	portsrepo "github.com/finoffice/finoffice_backend/internal/core/ports/repositories"
	portssvc "github.com/finoffice/finoffice_backend/internal/core/ports/services"
	"github.com/finoffice/finoffice_backend/internal/dto"
	"github.com/finoffice/finoffice_backend/internal/middleware"
	"github.com/finoffice/finoffice_backend/internal/utils"
)

const tokenIssuer = "finoffice_backend"

type authService struct {
	userRepo  portsrepo.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthSvcFacade.
func NewAuthService(userRepo portsrepo.UserRepository, jwtSecret string, jwtExpiry time.Duration) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		jwtExpiry: jwtExpiry,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// Login verifies the credentials and issues a signed token. Unknown user and
// wrong password return the same error so the response leaks nothing.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("failed login attempt", "username", req.Username)
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrForbidden)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, tokenIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &dto.LoginResponse{
		Token:  token,
		UserID: user.UserID,
		Name:   user.Name,
	}, nil
}

// Register creates a user with a bcrypt-hashed password. A taken username
// surfaces as apperrors.ErrDuplicate from the repository.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}

	return &dto.UserResponse{
		UserID:   user.UserID,
		Username: user.Username,
		Name:     user.Name,
	}, nil
}

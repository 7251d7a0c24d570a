package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/platform/session"
	repo "github.com/ecovolt/portal/internal/repo/mongo"
	"github.com/ecovolt/portal/pkg/events"
	"github.com/ecovolt/portal/pkg/logger"
)

type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, error)
	CurrentUser(ctx context.Context, sess session.Session) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess session.Session, req *domain.UpdateProfileRequest) (*domain.User, error)
}

type authService struct {
	userRepo repo.UserRepository
	eventBus events.Publisher
}

func NewAuthService(userRepo repo.UserRepository, eventBus events.Publisher) AuthService {
	return &authService{
		userRepo: userRepo,
		eventBus: eventBus,
	}
}

// Register creates the user record. The unique email index is the
// sole enforcer of uniqueness; there is no advisory pre-check, the
// store's rejection surfaces as ErrEmailTaken. Registration does not
// log the user in.
func (s *authService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := argon2id.CreateHash(req.Password, argon2id.DefaultParams)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req, passwordHash)
	if err != nil {
		return nil, err
	}

	event := events.UserRegisteredEvent{
		UserID:       user.ID.Hex(),
		Email:        user.Email,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		RegisteredAt: time.Now().UTC(),
	}
	if err := s.eventBus.Publish(ctx, events.UserRegistered, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish user registered event", "error", err, "user_id", user.ID.Hex())
	}

	return user, nil
}

// Login verifies the credentials and returns the user. An unknown
// email yields ErrUserNotFound and a failed hash comparison yields
// ErrInvalidCredentials; the two stay distinct so the HTTP layer can
// keep the observed 404/401 split, while both render the same message.
func (s *authService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.User, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	valid, err := argon2id.ComparePasswordAndHash(req.Password, user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

// CurrentUser resolves the session's user record. A session holding a
// stale id (user since removed) yields ErrUserNotFound.
func (s *authService) CurrentUser(ctx context.Context, sess session.Session) (*domain.User, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	user, err := s.userRepo.FindByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *authService) UpdateProfile(ctx context.Context, sess session.Session, req *domain.UpdateProfileRequest) (*domain.User, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.userRepo.Update(ctx, sess.UserID, req)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

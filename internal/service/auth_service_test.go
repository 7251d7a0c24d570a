package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/platform/session"
	"github.com/ecovolt/portal/internal/service"
	"github.com/ecovolt/portal/pkg/events"
)

func registerReq() *domain.RegisterRequest {
	return &domain.RegisterRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "correct-horse",
	}
}

func TestRegisterThenLogin(t *testing.T) {
	userRepo := newMockUserRepo()
	pub := &mockPublisher{}
	svc := service.NewAuthService(userRepo, pub)
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.PasswordHash == "correct-horse" {
		t.Fatal("password stored in plaintext")
	}
	if len(pub.subjects) != 1 || pub.subjects[0] != events.UserRegistered {
		t.Errorf("published subjects = %v, want [%s]", pub.subjects, events.UserRegistered)
	}

	got, err := svc.Login(ctx, &domain.LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("login resolved user %s, want %s", got.ID.Hex(), user.ID.Hex())
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := service.NewAuthService(userRepo, &mockPublisher{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if _, err := svc.Login(ctx, &domain.LoginRequest{Email: "  ADA@Example.com ", Password: "correct-horse"}); err != nil {
		t.Fatalf("Login with unnormalized email failed: %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := service.NewAuthService(userRepo, &mockPublisher{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	_, err := svc.Login(ctx, &domain.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := service.NewAuthService(newMockUserRepo(), &mockPublisher{})

	_, err := svc.Login(context.Background(), &domain.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := service.NewAuthService(userRepo, &mockPublisher{})
	ctx := context.Background()

	if _, err := svc.Register(ctx, registerReq()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}

	_, err := svc.Register(ctx, registerReq())
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
	if len(userRepo.users) != 1 {
		t.Errorf("user count = %d, want 1", len(userRepo.users))
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := service.NewAuthService(newMockUserRepo(), &mockPublisher{})

	cases := []struct {
		name string
		req  domain.RegisterRequest
	}{
		{"missing email", domain.RegisterRequest{FirstName: "A", LastName: "B", Password: "longenough"}},
		{"bad email", domain.RegisterRequest{FirstName: "A", LastName: "B", Email: "not-an-email", Password: "longenough"}},
		{"short password", domain.RegisterRequest{FirstName: "A", LastName: "B", Email: "a@b.co", Password: "short"}},
		{"missing first name", domain.RegisterRequest{LastName: "B", Email: "a@b.co", Password: "longenough"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			if _, err := svc.Register(context.Background(), &req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCurrentUser(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := service.NewAuthService(userRepo, &mockPublisher{})
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	got, err := svc.CurrentUser(ctx, session.Session{UserID: user.ID.Hex()})
	if err != nil {
		t.Fatalf("CurrentUser failed: %v", err)
	}
	if got.Email != "ada@example.com" {
		t.Errorf("email = %q, want %q", got.Email, "ada@example.com")
	}

	if _, err := svc.CurrentUser(ctx, session.Session{}); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("empty session err = %v, want ErrUnauthenticated", err)
	}

	// Stale session: id no longer present in the store
	if _, err := svc.CurrentUser(ctx, session.Session{UserID: "64b7e1f1f1f1f1f1f1f1f1f1"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("stale session err = %v, want ErrUserNotFound", err)
	}
}

func TestUpdateProfile(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := service.NewAuthService(userRepo, &mockPublisher{})
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	sess := session.Session{UserID: user.ID.Hex()}

	updated, err := svc.UpdateProfile(ctx, sess, &domain.UpdateProfileRequest{FirstName: "Augusta"})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if updated.FirstName != "Augusta" {
		t.Errorf("first name = %q, want %q", updated.FirstName, "Augusta")
	}
	if updated.LastName != "Lovelace" {
		t.Errorf("last name = %q, want unchanged %q", updated.LastName, "Lovelace")
	}
}

func TestUpdateProfileNoFields(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := service.NewAuthService(userRepo, &mockPublisher{})
	ctx := context.Background()

	user, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	sess := session.Session{UserID: user.ID.Hex()}

	_, err = svc.UpdateProfile(ctx, sess, &domain.UpdateProfileRequest{})
	if !errors.Is(err, domain.ErrNoFields) {
		t.Errorf("err = %v, want ErrNoFields", err)
	}

	// The stored record must be untouched
	stored := userRepo.users[user.ID.Hex()]
	if stored.FirstName != "Ada" || stored.Email != "ada@example.com" {
		t.Errorf("stored record changed: %+v", stored)
	}
}

func TestUpdateProfileDuplicateEmail(t *testing.T) {
	userRepo := newMockUserRepo()
	svc := service.NewAuthService(userRepo, &mockPublisher{})
	ctx := context.Background()

	first, err := svc.Register(ctx, registerReq())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	_, err = svc.Register(ctx, &domain.RegisterRequest{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("second Register failed: %v", err)
	}

	_, err = svc.UpdateProfile(ctx, session.Session{UserID: first.ID.Hex()}, &domain.UpdateProfileRequest{Email: "grace@example.com"})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

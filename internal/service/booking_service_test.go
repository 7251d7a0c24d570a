package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/platform/session"
	"github.com/ecovolt/portal/internal/service"
	"github.com/ecovolt/portal/pkg/events"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func seedUser(t *testing.T, repo *mockUserRepo, email string) *domain.User {
	t.Helper()
	u, err := repo.Create(context.Background(), &domain.RegisterRequest{
		FirstName: "Test",
		LastName:  "User",
		Email:     email,
	}, "hash")
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestCreateBookingRequiresSession(t *testing.T) {
	svc := service.NewBookingService(newMockBookingRepo(), newMockUserRepo(), &mockPublisher{})

	_, err := svc.Create(context.Background(), session.Session{}, &domain.CreateBookingRequest{
		Type: "consultation", Date: "2025-06-01", Time: "10:00",
	})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestCreateBookingMissingFields(t *testing.T) {
	userRepo := newMockUserRepo()
	user := seedUser(t, userRepo, "u@example.com")
	svc := service.NewBookingService(newMockBookingRepo(), userRepo, &mockPublisher{})
	sess := session.Session{UserID: user.ID.Hex()}

	cases := []struct {
		name string
		req  domain.CreateBookingRequest
	}{
		{"no date", domain.CreateBookingRequest{Type: "consultation", Time: "10:00"}},
		{"no time", domain.CreateBookingRequest{Type: "consultation", Date: "2025-06-01"}},
		{"no type", domain.CreateBookingRequest{Date: "2025-06-01", Time: "10:00"}},
		{"bad type", domain.CreateBookingRequest{Type: "demolition", Date: "2025-06-01", Time: "10:00"}},
		{"bad date", domain.CreateBookingRequest{Type: "consultation", Date: "June 1st", Time: "10:00"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			if _, err := svc.Create(context.Background(), sess, &req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreateBookingBindsOwnerToSession(t *testing.T) {
	userRepo := newMockUserRepo()
	user := seedUser(t, userRepo, "owner@example.com")
	bookingRepo := newMockBookingRepo()
	pub := &mockPublisher{}
	svc := service.NewBookingService(bookingRepo, userRepo, pub)

	booking, err := svc.Create(context.Background(), session.Session{UserID: user.ID.Hex()}, &domain.CreateBookingRequest{
		Type: "installation", Date: "2025-06-01", Time: "14:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if booking.UserID != user.ID {
		t.Errorf("owner = %s, want session user %s", booking.UserID.Hex(), user.ID.Hex())
	}
	if booking.Status != domain.StatusPending {
		t.Errorf("status = %q, want %q", booking.Status, domain.StatusPending)
	}
	// Contact details fall back to the profile when the form left them blank
	if booking.ContactEmail != "owner@example.com" {
		t.Errorf("contact email = %q, want profile email", booking.ContactEmail)
	}
	if len(pub.subjects) != 1 || pub.subjects[0] != events.BookingCreated {
		t.Errorf("published subjects = %v, want [%s]", pub.subjects, events.BookingCreated)
	}
}

func TestListForUserRequiresSession(t *testing.T) {
	svc := service.NewBookingService(newMockBookingRepo(), newMockUserRepo(), &mockPublisher{})

	_, err := svc.ListForUser(context.Background(), session.Session{})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("err = %v, want ErrUnauthenticated", err)
	}
}

func TestListForUserEmptyIsNotAnError(t *testing.T) {
	userRepo := newMockUserRepo()
	user := seedUser(t, userRepo, "empty@example.com")
	svc := service.NewBookingService(newMockBookingRepo(), userRepo, &mockPublisher{})

	bookings, err := svc.ListForUser(context.Background(), session.Session{UserID: user.ID.Hex()})
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if bookings == nil || len(bookings) != 0 {
		t.Errorf("bookings = %v, want empty slice", bookings)
	}
}

func TestListForUserIsolation(t *testing.T) {
	userRepo := newMockUserRepo()
	alice := seedUser(t, userRepo, "alice@example.com")
	bob := seedUser(t, userRepo, "bob@example.com")
	svc := service.NewBookingService(newMockBookingRepo(), userRepo, &mockPublisher{})
	ctx := context.Background()

	_, err := svc.Create(ctx, session.Session{UserID: alice.ID.Hex()}, &domain.CreateBookingRequest{
		Type: "consultation", Date: "2025-06-01", Time: "10:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	aliceList, err := svc.ListForUser(ctx, session.Session{UserID: alice.ID.Hex()})
	if err != nil {
		t.Fatalf("ListForUser(alice) failed: %v", err)
	}
	if len(aliceList) != 1 {
		t.Fatalf("alice has %d bookings, want 1", len(aliceList))
	}

	bobList, err := svc.ListForUser(ctx, session.Session{UserID: bob.ID.Hex()})
	if err != nil {
		t.Fatalf("ListForUser(bob) failed: %v", err)
	}
	if len(bobList) != 0 {
		t.Errorf("bob has %d bookings, want 0", len(bobList))
	}
}

func TestListForUserOrdering(t *testing.T) {
	userRepo := newMockUserRepo()
	user := seedUser(t, userRepo, "order@example.com")
	svc := service.NewBookingService(newMockBookingRepo(), userRepo, &mockPublisher{})
	ctx := context.Background()
	sess := session.Session{UserID: user.ID.Hex()}

	for _, b := range []struct{ date, time string }{
		{"2025-05-01", "10:00"},
		{"2025-05-02", "12:00"},
		{"2025-05-01", "09:00"},
	} {
		_, err := svc.Create(ctx, sess, &domain.CreateBookingRequest{
			Type: "consultation", Date: b.date, Time: b.time,
		})
		if err != nil {
			t.Fatalf("Create(%s %s) failed: %v", b.date, b.time, err)
		}
	}

	bookings, err := svc.ListForUser(ctx, sess)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}

	want := []struct{ date, time string }{
		{"2025-05-02", "12:00"},
		{"2025-05-01", "09:00"},
		{"2025-05-01", "10:00"},
	}
	if len(bookings) != len(want) {
		t.Fatalf("got %d bookings, want %d", len(bookings), len(want))
	}
	for i, w := range want {
		gotDate := bookings[i].Date.Format("2006-01-02")
		if gotDate != w.date || bookings[i].Time != w.time {
			t.Errorf("position %d: got %s %s, want %s %s", i, gotDate, bookings[i].Time, w.date, w.time)
		}
	}
}

func TestCreateBookingRoundTrip(t *testing.T) {
	userRepo := newMockUserRepo()
	user := seedUser(t, userRepo, "round@example.com")
	svc := service.NewBookingService(newMockBookingRepo(), userRepo, &mockPublisher{})
	ctx := context.Background()
	sess := session.Session{UserID: user.ID.Hex()}

	_, err := svc.Create(ctx, sess, &domain.CreateBookingRequest{
		Type: "installation", Date: "2025-06-01", Time: "14:00",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	bookings, err := svc.ListForUser(ctx, sess)
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(bookings) != 1 {
		t.Fatalf("got %d bookings, want 1", len(bookings))
	}

	dto := bookings[0].ToDTO()
	if dto.Service != "installation" || dto.Status != "pending" || dto.Date != "2025-06-01" || dto.Time != "14:00" {
		t.Errorf("round-trip DTO = %+v", dto)
	}
}

func TestCreateBookingStaleSessionUser(t *testing.T) {
	svc := service.NewBookingService(newMockBookingRepo(), newMockUserRepo(), &mockPublisher{})

	_, err := svc.Create(context.Background(), session.Session{UserID: primitive.NewObjectID().Hex()}, &domain.CreateBookingRequest{
		Type: "consultation", Date: "2025-06-01", Time: "10:00",
	})
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

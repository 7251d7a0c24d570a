package service_test

import (
	"context"
	"sort"

	"github.com/ecovolt/portal/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ---------- Mocks ----------

type mockUserRepo struct {
	users map[string]*domain.User // hex id -> user
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*domain.User)}
}

func (m *mockUserRepo) Create(_ context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == req.Email {
			return nil, domain.ErrEmailTaken
		}
	}

	u := &domain.User{
		ID:           primitive.NewObjectID(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
	}
	m.users[u.ID.Hex()] = u
	return u, nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (m *mockUserRepo) Update(_ context.Context, id string, req *domain.UpdateProfileRequest) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}

	if req.Email != "" {
		for otherID, other := range m.users {
			if otherID != id && other.Email == req.Email {
				return nil, domain.ErrEmailTaken
			}
		}
		u.Email = req.Email
	}
	if req.FirstName != "" {
		u.FirstName = req.FirstName
	}
	if req.LastName != "" {
		u.LastName = req.LastName
	}

	copy := *u
	return &copy, nil
}

type mockBookingRepo struct {
	bookings []domain.Booking
}

func newMockBookingRepo() *mockBookingRepo {
	return &mockBookingRepo{}
}

func (m *mockBookingRepo) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = primitive.NewObjectID()
	m.bookings = append(m.bookings, *booking)
	return booking, nil
}

// ListByUser mirrors the store's ordering contract: date descending,
// time ascending within the same date.
func (m *mockBookingRepo) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	out := []domain.Booking{}
	for _, b := range m.bookings {
		if b.UserID.Hex() == userID {
			out = append(out, b)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].Time < out[j].Time
	})
	return out, nil
}

type mockPublisher struct {
	subjects []string
}

func (m *mockPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	m.subjects = append(m.subjects, subject)
	return nil
}

func (m *mockPublisher) Close() error { return nil }

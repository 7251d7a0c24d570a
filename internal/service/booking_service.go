package service

import (
	"context"
	"fmt"

	"github.com/ecovolt/portal/internal/domain"
	"github.com/ecovolt/portal/internal/platform/session"
	repo "github.com/ecovolt/portal/internal/repo/mongo"
	"github.com/ecovolt/portal/pkg/events"
	"github.com/ecovolt/portal/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingService interface {
	Create(ctx context.Context, sess session.Session, req *domain.CreateBookingRequest) (*domain.Booking, error)
	ListForUser(ctx context.Context, sess session.Session) ([]domain.Booking, error)
}

type bookingService struct {
	bookingRepo repo.BookingRepository
	userRepo    repo.UserRepository
	eventBus    events.Publisher
}

func NewBookingService(bookingRepo repo.BookingRepository, userRepo repo.UserRepository, eventBus events.Publisher) BookingService {
	return &bookingService{
		bookingRepo: bookingRepo,
		userRepo:    userRepo,
		eventBus:    eventBus,
	}
}

// Create persists a pending booking owned by the session's user. The
// owner is always the authenticated identity; a client-supplied owner
// id is never trusted.
func (s *bookingService) Create(ctx context.Context, sess session.Session, req *domain.CreateBookingRequest) (*domain.Booking, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	userID, err := primitive.ObjectIDFromHex(sess.UserID)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	// Fall back to the profile for contact details the form left blank.
	if req.Name == "" || req.Email == "" {
		user, err := s.userRepo.FindByID(ctx, sess.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to find user: %w", err)
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		if req.Name == "" {
			req.Name = user.FirstName + " " + user.LastName
		}
		if req.Email == "" {
			req.Email = user.Email
		}
	}

	serviceType, _ := domain.ParseServiceType(req.Type)

	booking := &domain.Booking{
		UserID:       userID,
		Type:         serviceType,
		Date:         req.ParsedDate(),
		Time:         req.Time,
		ContactName:  req.Name,
		ContactEmail: req.Email,
		Status:       domain.StatusPending,
	}

	booking, err = s.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	event := events.BookingCreatedEvent{
		BookingID:    booking.ID.Hex(),
		UserID:       booking.UserID.Hex(),
		ContactName:  booking.ContactName,
		ContactEmail: booking.ContactEmail,
		ServiceType:  string(booking.Type),
		Date:         booking.Date.Format("2006-01-02"),
		Time:         booking.Time,
		CreatedAt:    booking.CreatedAt,
	}
	if err := s.eventBus.Publish(ctx, events.BookingCreated, event); err != nil {
		logger.ErrorContext(ctx, "Failed to publish booking created event", "error", err, "booking_id", booking.ID.Hex())
	}

	return booking, nil
}

// ListForUser returns the session user's bookings, newest date first
// and time ascending within a date. A user with no bookings gets an
// empty slice, not an error.
func (s *bookingService) ListForUser(ctx context.Context, sess session.Session) ([]domain.Booking, error) {
	if !sess.IsAuthenticated() {
		return nil, domain.ErrUnauthenticated
	}

	bookings, err := s.bookingRepo.ListByUser(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

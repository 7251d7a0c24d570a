package domain

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ServiceType string

const (
	ServiceConsultation ServiceType = "consultation"
	ServiceInstallation ServiceType = "installation"
)

func ParseServiceType(raw string) (ServiceType, bool) {
	switch ServiceType(strings.ToLower(strings.TrimSpace(raw))) {
	case ServiceConsultation:
		return ServiceConsultation, true
	case ServiceInstallation:
		return ServiceInstallation, true
	}
	return "", false
}

type BookingStatus string

// Pending is the only status in the current flow; no transition
// logic exists.
const StatusPending BookingStatus = "pending"

type Booking struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"user_id" json:"user_id"`
	Type         ServiceType        `bson:"type" json:"type"`
	Date         time.Time          `bson:"date" json:"date"`
	Time         string             `bson:"time" json:"time"`
	ContactName  string             `bson:"name" json:"name"`
	ContactEmail string             `bson:"email" json:"email"`
	Status       BookingStatus      `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

type CreateBookingRequest struct {
	Type  string `json:"type"`
	Date  string `json:"date"` // 2006-01-02
	Time  string `json:"time"` // 15:04
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (r *CreateBookingRequest) Normalize() {
	r.Type = strings.ToLower(strings.TrimSpace(r.Type))
	r.Date = strings.TrimSpace(r.Date)
	r.Time = strings.TrimSpace(r.Time)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *CreateBookingRequest) Validate() error {
	if r.Date == "" || r.Time == "" || r.Type == "" {
		return fmt.Errorf("%w: date, time and service type are required", ErrValidation)
	}
	if _, ok := ParseServiceType(r.Type); !ok {
		return fmt.Errorf("%w: unknown service type %q", ErrValidation, r.Type)
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		return fmt.Errorf("%w: invalid date format", ErrValidation)
	}
	return nil
}

// ParsedDate returns the booking date as a time value. Validate must
// have accepted the request first.
func (r *CreateBookingRequest) ParsedDate() time.Time {
	d, _ := time.Parse("2006-01-02", r.Date)
	return d
}

// BookingDTO is the booking summary shape consumed by the dashboard.
type BookingDTO struct {
	ID      string `json:"id"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}

func (b *Booking) ToDTO() BookingDTO {
	return BookingDTO{
		ID:      b.ID.Hex(),
		Service: string(b.Type),
		Date:    b.Date.Format("2006-01-02"),
		Time:    b.Time,
		Status:  string(b.Status),
	}
}

package main

import (
	"encoding/json"
	"os"
	"os/signal"
	"syscall"

	"github.com/ecovolt/portal/internal/mailer"
	"github.com/ecovolt/portal/pkg/config"
	"github.com/ecovolt/portal/pkg/events"
	"github.com/ecovolt/portal/pkg/logger"
	"github.com/joho/godotenv"
)

// The notify worker consumes portal events off NATS and sends the
// corresponding emails: a welcome mail on registration, a
// confirmation on booking creation. Delivery is best-effort; a failed
// send is logged, never retried.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	bus, err := events.NewNATSEventBus(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer bus.Close()

	mail := selectMailer(cfg)

	err = bus.QueueSubscribe(events.UserRegistered, "notify", func(msg *events.Message) {
		var ev events.UserRegisteredEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			logger.Error("Failed to decode user registered event", "error", err)
			return
		}

		name := ev.FirstName + " " + ev.LastName
		if err := mail.SendWelcomeEmail(ev.Email, name); err != nil {
			logger.Error("Failed to send welcome email", "error", err, "user_id", ev.UserID)
			return
		}
		logger.Info("Sent welcome email", "user_id", ev.UserID)
	})
	if err != nil {
		logger.Error("Failed to subscribe", "subject", events.UserRegistered, "error", err)
		os.Exit(1)
	}

	err = bus.QueueSubscribe(events.BookingCreated, "notify", func(msg *events.Message) {
		var ev events.BookingCreatedEvent
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			logger.Error("Failed to decode booking created event", "error", err)
			return
		}

		if err := mail.SendBookingConfirmation(ev.ContactEmail, ev.ContactName, ev.ServiceType, ev.Date, ev.Time); err != nil {
			logger.Error("Failed to send booking confirmation", "error", err, "booking_id", ev.BookingID)
			return
		}
		logger.Info("Sent booking confirmation", "booking_id", ev.BookingID)
	})
	if err != nil {
		logger.Error("Failed to subscribe", "subject", events.BookingCreated, "error", err)
		os.Exit(1)
	}

	logger.Info("Notify worker started", "nats", cfg.NATS.URL, "dev_mode", cfg.Email.DevMode)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down notify worker...")
}

func selectMailer(cfg *config.Config) mailer.Service {
	if cfg.Email.DevMode {
		return mailer.NewDevMailer()
	}
	if cfg.Email.MailerSendKey != "" {
		return mailer.NewMailerSend(cfg.Email.MailerSendKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}
	return mailer.NewSMTPMailer(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPFrom,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPass,
		cfg.Email.SMTPUseTLS,
	)
}

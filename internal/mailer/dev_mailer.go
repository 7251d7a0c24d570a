package mailer

import (
	"fmt"

	"github.com/ecovolt/portal/pkg/logger"
)

type DevMailer struct{}

func NewDevMailer() *DevMailer {
	return &DevMailer{}
}

func (d *DevMailer) SendWelcomeEmail(toEmail, toName string) error {
	logger.Info("[DEV MAIL] Welcome Email",
		"to", toEmail,
		"name", toName,
	)

	fmt.Printf("\n"+
		"=================================================================\n"+
		"WELCOME EMAIL (DEV MODE)\n"+
		"=================================================================\n"+
		"To: %s (%s)\n"+
		"Subject: Welcome to EcoVolt\n"+
		"=================================================================\n\n",
		toEmail, toName)

	return nil
}

func (d *DevMailer) SendBookingConfirmation(toEmail, toName, serviceType, date, timeSlot string) error {
	logger.Info("[DEV MAIL] Booking Confirmation",
		"to", toEmail,
		"name", toName,
		"service", serviceType,
		"date", date,
		"time", timeSlot,
	)

	fmt.Printf("\n"+
		"=================================================================\n"+
		"BOOKING CONFIRMATION (DEV MODE)\n"+
		"=================================================================\n"+
		"To: %s (%s)\n"+
		"Subject: Your EcoVolt %s appointment\n"+
		"\n"+
		"Date: %s\n"+
		"Time: %s\n"+
		"=================================================================\n\n",
		toEmail, toName, serviceType, date, timeSlot)

	return nil
}

package mailer

type Service interface {
	SendWelcomeEmail(toEmail, toName string) error
	SendBookingConfirmation(toEmail, toName, serviceType, date, timeSlot string) error
}

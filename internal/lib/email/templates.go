package email

// Template names an HTML email template under templates/emails/.
type Template string

const (
	// TemplateWelcome greets a newly registered user.
	TemplateWelcome Template = "welcome"

	// TemplateBookingConfirmation is sent after a booking is created.
	TemplateBookingConfirmation Template = "booking_confirmation"
)

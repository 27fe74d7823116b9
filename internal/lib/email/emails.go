package email

// SendWelcomeEmail greets a newly registered user.
func (c *Client) SendWelcomeEmail(to, name string) error {
	data := map[string]string{
		"UserName": name,
	}

	return c.SendEmail(
		to,
		"Welcome to Shutterspot!",
		TemplateWelcome,
		data,
	)
}

// SendBookingConfirmation notifies a user that their location booking was
// received. Values arrive pre-formatted; templates only substitute.
func (c *Client) SendBookingConfirmation(to, locationTitle, startTime, totalAmount string) error {
	data := map[string]string{
		"LocationTitle": locationTitle,
		"StartTime":     startTime,
		"TotalAmount":   totalAmount,
	}

	return c.SendEmail(
		to,
		"Your Shutterspot booking request",
		TemplateBookingConfirmation,
		data,
	)
}

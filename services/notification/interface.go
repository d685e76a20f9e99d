package notification

import "context"

// Mailer is the external email delivery collaborator: it is invoked with an
// address, a subject, and a template plus its data, and owns everything
// beyond that (rendering, transport, retries on its side).
type Mailer interface {
	SendEmail(ctx context.Context, to, subject, template string, data map[string]string) error
}

// Reminder email templates.
const (
	TemplateGuestReminder = "booking_reminder_guest"
	TemplateHostReminder  = "booking_reminder_host"
)

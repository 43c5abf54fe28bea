package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Subject/Text/HTML are used as-is; Kind drives the default subject when none
// is provided.
type EmailJob struct {
	To      string `json:"to"`
	Kind    string `json:"kind,omitempty"` // "welcome", "order_confirmation"
	Subject string `json:"subject,omitempty"`
	Text    string `json:"text,omitempty"`
	HTML    string `json:"html,omitempty"`
}

const (
	KindWelcome           = "welcome"
	KindOrderConfirmation = "order_confirmation"
)

// SubjectFor returns the default subject line for a job kind.
func SubjectFor(kind string) string {
	switch kind {
	case KindWelcome:
		return "Welcome to GoShop"
	case KindOrderConfirmation:
		return "Your order confirmation"
	default:
		return "Notification"
	}
}

package agriassist

import "log"

// Notifier delivers raw verification secrets out-of-band. The workflow
// only depends on this interface; real email/SMS gateways plug in here.
type Notifier interface {
	SendEmail(to, subject, body string) error
	SendSMS(mobile, text string) error
}

// ConsoleNotifier is a development implementation that logs deliveries
// instead of sending them.
type ConsoleNotifier struct{}

func (c *ConsoleNotifier) SendEmail(to, subject, body string) error {
	log.Printf("\n=== EMAIL ===")
	log.Printf("To: %s", to)
	log.Printf("Subject: %s", subject)
	log.Printf("Body: %s", body)
	log.Printf("=============\n")
	return nil
}

func (c *ConsoleNotifier) SendSMS(mobile, text string) error {
	log.Printf("\n=== SMS ===")
	log.Printf("To: %s", mobile)
	log.Printf("Text: %s", text)
	log.Printf("===========\n")
	return nil
}

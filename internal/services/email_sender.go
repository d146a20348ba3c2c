package services

// EmailSender delivers the new-shows digest. Satisfied by SMTPSender; tests
// substitute their own.
type EmailSender interface {
	Send(to string, subject string, body string) error
}

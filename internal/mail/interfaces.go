package mail

import "github.com/ryan-gang/rawmail/internal/config"

// Transport is the mail library handle a Composer configures and delegates to.
// Add* methods report whether the library accepted the address.
type Transport interface {
	SetFrom(address string)
	SetFromName(name string)
	SetHTML(isHTML bool)
	UseSMTP(settings config.SMTPSettings)
	AddReplyTo(address, name string) bool
	AddAddress(address, name string) bool
	AddCC(address, name string) bool
	AddBCC(address, name string) bool
	AddAttachment(path string)
	SetSubject(subject string)
	SetBody(body string)

	// Send delivers the message built from the current state.
	Send() error

	From() string
	FromName() string
	Subject() string
	Body() string
	IsSMTP() bool
	Host() string
	Port() int
}

// Notifier announces events to the rest of an application. The return value
// of the dispatch, if any, is not inspected.
type Notifier interface {
	Fire(name string, event any)
}

// Logger is the subset of logging the composer needs.
type Logger interface {
	Debugf(format string, v ...any)
	Warnf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Warnf(string, ...any)  {}

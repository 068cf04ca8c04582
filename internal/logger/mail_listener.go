package logger

import (
	"github.com/ryan-gang/rawmail/internal/mail"
)

// MailListener logs every lifecycle point of a mail.Composer. It also
// satisfies mail.Notifier so the send event can be logged.
type MailListener struct {
	log LoggerInterface
}

var _ mail.Listener = (*MailListener)(nil)

func NewMailListener(log LoggerInterface) *MailListener {
	return &MailListener{log: log}
}

func (m *MailListener) OnInit(c *mail.Composer) {
	if c.IsSMTP() {
		m.log.Debugf("mailer ready, from %q via smtp %s:%d", c.FromAddress(), c.SMTPHost(), c.SMTPPort())
		return
	}
	m.log.Debugf("mailer ready, from %q via sendmail", c.FromAddress())
}

func (m *MailListener) OnRecipientAdded(r mail.Recipient, accepted bool) {
	if !accepted {
		m.log.Warnf("recipient %s was rejected", r)
		return
	}
	m.log.Debugf("added recipient %s", r)
}

func (m *MailListener) OnSubjectSet(subject string) {
	m.log.Debugf("subject set to %q", subject)
}

func (m *MailListener) OnBodySet(body string) {
	m.log.Debugf("body set, %d bytes", len(body))
}

func (m *MailListener) OnAttachmentAdded(path string) {
	m.log.Debugf("attached %s", path)
}

func (m *MailListener) OnCCAdded(r mail.Recipient) {
	m.log.Debugf("added cc %s", r)
}

func (m *MailListener) OnBCCAdded(r mail.Recipient) {
	m.log.Debugf("added bcc %s", r)
}

func (m *MailListener) BeforeSend(c *mail.Composer) {
	m.log.Infof("sending %q to %d recipient(s)", c.Subject(), len(c.To()))
}

func (m *MailListener) AfterSend(c *mail.Composer, sent bool) {
	if !sent {
		m.log.Errorf("sending %q failed: %v", c.Subject(), c.Err())
		return
	}
	m.log.Infof("sent %q", c.Subject())
}

// Fire logs SendMailEvent values and ignores anything else.
func (m *MailListener) Fire(name string, event any) {
	e, ok := event.(*mail.SendMailEvent)
	if !ok {
		return
	}
	m.log.Debugf("%s: %d recipient(s), result %t", name, len(e.To()), e.Result())
}

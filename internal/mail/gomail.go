package mail

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ryan-gang/rawmail/internal/config"

	gomail "gopkg.in/mail.v2"
)

const DefaultSendmailPath = "/usr/sbin/sendmail"

var validate = validator.New(validator.WithRequiredStructEnabled())

type address struct {
	address string
	name    string
}

// GomailTransport is a Transport backed by gopkg.in/mail.v2. Without SMTP
// settings messages are piped to the local sendmail binary.
type GomailTransport struct {
	from        string
	fromName    string
	html        bool
	smtp        *config.SMTPSettings
	replyTo     []address
	to          []address
	cc          []address
	bcc         []address
	attachments []string
	subject     string
	body        string

	sender gomail.Sender
}

// GomailOption configures a GomailTransport.
type GomailOption func(*GomailTransport)

// WithSender replaces sendmail as the delivery used outside SMTP mode.
func WithSender(s gomail.Sender) GomailOption {
	return func(t *GomailTransport) {
		t.sender = s
	}
}

// WithSendmailPath sets the sendmail binary used outside SMTP mode.
func WithSendmailPath(path string) GomailOption {
	return func(t *GomailTransport) {
		t.sender = sendmail(path)
	}
}

// NewGomailTransport returns a transport in sendmail mode using
// DefaultSendmailPath unless an option replaces the sender.
func NewGomailTransport(opts ...GomailOption) *GomailTransport {
	t := &GomailTransport{sender: sendmail(DefaultSendmailPath)}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func sendmail(path string) gomail.SendFunc {
	return func(from string, to []string, msg io.WriterTo) error {
		args := append([]string{"-oi", "-f", from, "--"}, to...)
		cmd := exec.Command(path, args...)
		stdin, err := cmd.StdinPipe()
		if err != nil {
			return err
		}
		if err := cmd.Start(); err != nil {
			return fmt.Errorf("starting %s: %w", path, err)
		}
		_, writeErr := msg.WriteTo(stdin)
		closeErr := stdin.Close()
		if err := cmd.Wait(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if writeErr != nil {
			return writeErr
		}
		return closeErr
	}
}

func valid(addr string) bool {
	return validate.Var(addr, "required,email") == nil
}

func (t *GomailTransport) SetFrom(address string) {
	t.from = address
}

func (t *GomailTransport) SetFromName(name string) {
	t.fromName = name
}

func (t *GomailTransport) SetHTML(isHTML bool) {
	t.html = isHTML
}

func (t *GomailTransport) UseSMTP(settings config.SMTPSettings) {
	t.smtp = &settings
}

func (t *GomailTransport) AddReplyTo(addr, name string) bool {
	return t.add(&t.replyTo, addr, name)
}

func (t *GomailTransport) AddAddress(addr, name string) bool {
	return t.add(&t.to, addr, name)
}

func (t *GomailTransport) AddCC(addr, name string) bool {
	return t.add(&t.cc, addr, name)
}

func (t *GomailTransport) AddBCC(addr, name string) bool {
	return t.add(&t.bcc, addr, name)
}

func (t *GomailTransport) add(list *[]address, addr, name string) bool {
	addr = strings.TrimSpace(addr)
	if !valid(addr) {
		return false
	}
	*list = append(*list, address{address: addr, name: strings.TrimSpace(name)})
	return true
}

func (t *GomailTransport) AddAttachment(path string) {
	t.attachments = append(t.attachments, path)
}

func (t *GomailTransport) SetSubject(subject string) {
	t.subject = subject
}

func (t *GomailTransport) SetBody(body string) {
	t.body = body
}

func (t *GomailTransport) From() string {
	return t.from
}

func (t *GomailTransport) FromName() string {
	return t.fromName
}

func (t *GomailTransport) Subject() string {
	return t.subject
}

func (t *GomailTransport) Body() string {
	return t.body
}

func (t *GomailTransport) IsHTML() bool {
	return t.html
}

func (t *GomailTransport) IsSMTP() bool {
	return t.smtp != nil
}

// Host is the SMTP host, empty in sendmail mode.
func (t *GomailTransport) Host() string {
	if t.smtp == nil {
		return ""
	}
	return t.smtp.Host
}

// Port is the SMTP port, zero in sendmail mode.
func (t *GomailTransport) Port() int {
	if t.smtp == nil {
		return 0
	}
	return t.smtp.Port
}

func (t *GomailTransport) message() *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", t.from, t.fromName)
	setAddresses(msg, "Reply-To", t.replyTo)
	setAddresses(msg, "To", t.to)
	setAddresses(msg, "Cc", t.cc)
	setAddresses(msg, "Bcc", t.bcc)
	msg.SetHeader("Subject", t.subject)
	msg.SetDateHeader("Date", time.Now())

	if t.html {
		msg.SetBody("text/plain", PlainText(t.body))
		msg.AddAlternative("text/html", t.body)
	} else {
		msg.SetBody("text/plain", t.body)
	}

	for _, file := range t.attachments {
		msg.Attach(file)
	}
	return msg
}

func setAddresses(msg *gomail.Message, field string, list []address) {
	if len(list) == 0 {
		return
	}
	values := make([]string, 0, len(list))
	for _, a := range list {
		values = append(values, msg.FormatAddress(a.address, a.name))
	}
	msg.SetHeader(field, values...)
}

func (t *GomailTransport) dialer() *gomail.Dialer {
	s := t.smtp
	var username, password string
	if s.Auth {
		username, password = s.Username, s.Password
	}

	dialer := gomail.NewDialer(s.Host, s.Port, username, password)
	switch strings.ToLower(s.Security) {
	case config.SecuritySSL:
		dialer.SSL = true
	case config.SecurityTLS:
		dialer.SSL = false
		dialer.StartTLSPolicy = gomail.MandatoryStartTLS
	}
	if s.Timeout > 0 {
		dialer.Timeout = time.Duration(s.Timeout) * time.Second
	}
	if s.LocalName != "" {
		dialer.LocalName = s.LocalName
	}
	return dialer
}

// Send renders the whole message before contacting sendmail or the SMTP
// server, so a message that cannot be rendered is never partially delivered.
func (t *GomailTransport) Send() error {
	var buf bytes.Buffer
	if _, err := t.message().WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to build mail: %w", err)
	}
	rendered := renderedMessage(buf.Bytes())
	to := t.recipients()

	if t.smtp == nil {
		if err := t.sender.Send(t.from, to, rendered); err != nil {
			return fmt.Errorf("failed to send mail: %w", err)
		}
		return nil
	}

	s, err := t.dialer().Dial()
	if err != nil {
		return fmt.Errorf("failed to send mail via %s:%d: %w", t.smtp.Host, t.smtp.Port, err)
	}
	if err := s.Send(t.from, to, rendered); err != nil {
		s.Close()
		return fmt.Errorf("failed to send mail via %s:%d: %w", t.smtp.Host, t.smtp.Port, err)
	}
	return s.Close()
}

// recipients is the envelope recipient list: To, Cc then Bcc, without
// duplicates.
func (t *GomailTransport) recipients() []string {
	seen := make(map[string]bool)
	var out []string
	for _, list := range [][]address{t.to, t.cc, t.bcc} {
		for _, a := range list {
			if seen[a.address] {
				continue
			}
			seen[a.address] = true
			out = append(out, a.address)
		}
	}
	return out
}

type renderedMessage []byte

func (m renderedMessage) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(m)
	return int64(n), err
}

// WriteTo writes the MIME message without sending it.
func (t *GomailTransport) WriteTo(w io.Writer) (int64, error) {
	return t.message().WriteTo(w)
}

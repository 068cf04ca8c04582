package mail

import (
	"errors"
	"io"
	"slices"

	"github.com/ryan-gang/rawmail/internal/config"
)

// ErrDumpUnsupported is returned by Dump when the transport cannot render a
// message without sending it.
var ErrDumpUnsupported = errors.New("transport cannot write messages")

// Composer holds the state of one message and hands it to a Transport. It is
// meant for a single caller and is not safe for concurrent use.
//
// Send never clears state: recipients and attachments accumulate across calls
// and every Send delivers the message as it currently stands.
type Composer struct {
	transport    Transport
	newTransport func() Transport
	to           []Recipient
	attachments  []string
	err          error

	notifier         Notifier
	listener         Listener
	logger           Logger
	recipientFilter  RecipientFilter
	attachmentFilter AttachmentFilter
}

// Option configures a Composer in New.
type Option func(*Composer)

// WithTransport sets the factory used by Init for a fresh Transport.
func WithTransport(factory func() Transport) Option {
	return func(c *Composer) {
		c.newTransport = factory
	}
}

// WithNotifier makes Send fire a SendMailEvent after every delivery attempt.
func WithNotifier(n Notifier) Option {
	return func(c *Composer) {
		c.notifier = n
	}
}

// WithListener receives every lifecycle callback. Nil keeps NopListener.
func WithListener(l Listener) Option {
	return func(c *Composer) {
		c.listener = l
	}
}

// WithLogger reports ignored configuration keys and rejected addresses.
func WithLogger(l Logger) Option {
	return func(c *Composer) {
		c.logger = l
	}
}

// WithRecipientFilter rewrites every AddTo recipient before it is recorded.
func WithRecipientFilter(f RecipientFilter) Option {
	return func(c *Composer) {
		c.recipientFilter = f
	}
}

// WithAttachmentFilter rewrites every attachment path before it is registered.
func WithAttachmentFilter(f AttachmentFilter) Option {
	return func(c *Composer) {
		c.attachmentFilter = f
	}
}

// New builds a Composer and applies raw with Init. raw is any value accepted
// by config.Parse.
func New(raw any, opts ...Option) (*Composer, error) {
	c := &Composer{
		newTransport: func() Transport { return NewGomailTransport() },
		listener:     NopListener{},
		logger:       nopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.listener == nil {
		c.listener = NopListener{}
	}
	if c.logger == nil {
		c.logger = nopLogger{}
	}

	if err := c.Init(raw); err != nil {
		return nil, err
	}
	return c, nil
}

// Init applies a configuration mapping to a freshly constructed Transport.
// Message state collected before is dropped along with the old transport.
func (c *Composer) Init(raw any) error {
	s, err := config.Parse(raw)
	if err != nil {
		return err
	}

	t := c.newTransport()
	t.SetFrom(s.FromEmail)
	t.SetFromName(s.FromName)
	t.SetHTML(s.IsHTML)
	if s.SMTP != nil {
		t.UseSMTP(*s.SMTP)
	}
	if s.ReplyTo != nil && !t.AddReplyTo(s.ReplyTo.Email, s.ReplyTo.Name) {
		c.logger.Warnf("reply-to address %q was rejected", s.ReplyTo.Email)
	}
	for _, key := range s.Unknown {
		c.logger.Debugf("ignoring unknown configuration key %q", key)
	}

	c.transport = t
	c.to = nil
	c.attachments = nil
	c.err = nil

	c.listener.OnInit(c)
	return nil
}

// AddTo records r and adds it to the transport's To list. The returned bool
// is the transport's verdict on the address; the error is only set when r is
// not a valid Recipient.
func (c *Composer) AddTo(r Recipient) (bool, error) {
	if c.recipientFilter != nil && r != nil {
		r = c.recipientFilter(r)
	}
	address, name, err := split(r)
	if err != nil {
		return false, err
	}

	c.to = append(c.to, r)
	ok := c.transport.AddAddress(address, name)
	c.listener.OnRecipientAdded(r, ok)
	return ok, nil
}

func (c *Composer) SetSubject(subject string) {
	c.transport.SetSubject(subject)
	c.listener.OnSubjectSet(subject)
}

func (c *Composer) SetBody(body string) {
	c.transport.SetBody(body)
	c.listener.OnBodySet(body)
}

// AddAttachment registers a file path. Whether the file exists is for the
// transport to find out when sending.
func (c *Composer) AddAttachment(path string) {
	if c.attachmentFilter != nil {
		path = c.attachmentFilter(path)
	}
	c.attachments = append(c.attachments, path)
	c.transport.AddAttachment(path)
	c.listener.OnAttachmentAdded(path)
}

func (c *Composer) AddCC(r Recipient) error {
	address, name, err := split(r)
	if err != nil {
		return err
	}
	if !c.transport.AddCC(address, name) {
		c.logger.Warnf("cc address %q was rejected", address)
	}
	c.listener.OnCCAdded(r)
	return nil
}

func (c *Composer) AddBCC(r Recipient) error {
	address, name, err := split(r)
	if err != nil {
		return err
	}
	if !c.transport.AddBCC(address, name) {
		c.logger.Warnf("bcc address %q was rejected", address)
	}
	c.listener.OnBCCAdded(r)
	return nil
}

// Send delivers the current message and reports whether it went out. A
// failure is not an error here; Err holds the cause until the next Send.
func (c *Composer) Send() bool {
	c.listener.BeforeSend(c)

	c.err = c.transport.Send()
	sent := c.err == nil
	if !sent {
		c.logger.Warnf("sending mail failed: %v", c.err)
	}

	c.listener.AfterSend(c, sent)

	if c.notifier != nil {
		c.notifier.Fire(EventSendMessage, NewSendMailEvent(c.to, c.Subject(), c.Body(), sent))
	}
	return sent
}

// Dump writes the message as it would be sent, without sending it.
func (c *Composer) Dump(w io.Writer) error {
	wt, ok := c.transport.(io.WriterTo)
	if !ok {
		return ErrDumpUnsupported
	}
	_, err := wt.WriteTo(w)
	return err
}

// To returns every recipient passed to AddTo, in order.
func (c *Composer) To() []Recipient {
	return slices.Clone(c.to)
}

func (c *Composer) Attachments() []string {
	return slices.Clone(c.attachments)
}

func (c *Composer) FromName() string {
	return c.transport.FromName()
}

func (c *Composer) FromAddress() string {
	return c.transport.From()
}

func (c *Composer) Subject() string {
	return c.transport.Subject()
}

func (c *Composer) Body() string {
	return c.transport.Body()
}

func (c *Composer) IsSMTP() bool {
	return c.transport.IsSMTP()
}

func (c *Composer) SMTPHost() string {
	return c.transport.Host()
}

func (c *Composer) SMTPPort() int {
	return c.transport.Port()
}

// Err returns the error of the last Send, nil if it succeeded or none ran.
func (c *Composer) Err() error {
	return c.err
}

package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

var (
	// ErrNATSSubjectRequired is returned when the subject is empty.
	ErrNATSSubjectRequired = errors.New("notify: nats subject is required")
	// ErrNATSURLRequired is returned when the NATS server URL is missing.
	ErrNATSURLRequired = errors.New("notify: nats url is required")
)

// HeaderEventName carries the event name on published messages.
const HeaderEventName = "Event-Name"

// Publisher is the part of *nats.Conn the notifier uses.
type Publisher interface {
	PublishMsg(msg *nats.Msg) error
	Flush() error
}

// Envelope is the JSON document published for each event.
type Envelope struct {
	Name      string    `json:"name"`
	Event     any       `json:"event"`
	Timestamp time.Time `json:"timestamp"`
}

// NATS publishes events as JSON to a NATS subject. Fire is fire-and-forget:
// failures go to the error callback.
type NATS struct {
	pub     Publisher
	conn    *nats.Conn
	subject string
	onError func(error)
	now     func() time.Time
}

type NATSOption func(*NATS)

// WithErrorHandler is called with every publish failure.
func WithErrorHandler(f func(error)) NATSOption {
	return func(n *NATS) {
		n.onError = f
	}
}

func NewNATS(pub Publisher, subject string, opts ...NATSOption) (*NATS, error) {
	if subject == "" {
		return nil, ErrNATSSubjectRequired
	}
	n := &NATS{
		pub:     pub,
		subject: subject,
		onError: func(error) {},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

// ConnectNATS dials url and returns a notifier owning the connection.
func ConnectNATS(url, subject string, opts []NATSOption, natsOpts ...nats.Option) (*NATS, error) {
	if url == "" {
		return nil, ErrNATSURLRequired
	}
	if subject == "" {
		return nil, ErrNATSSubjectRequired
	}

	conn, err := nats.Connect(url, natsOpts...)
	if err != nil {
		return nil, fmt.Errorf("notify: nats connect: %w", err)
	}

	n, err := NewNATS(conn, subject, opts...)
	if err != nil {
		conn.Close()
		return nil, err
	}
	n.conn = conn
	return n, nil
}

func (n *NATS) Fire(name string, event any) {
	if err := n.publish(name, event); err != nil {
		n.onError(err)
	}
}

func (n *NATS) publish(name string, event any) error {
	body, err := json.Marshal(Envelope{Name: name, Event: event, Timestamp: n.now().UTC()})
	if err != nil {
		return fmt.Errorf("notify: encode %s: %w", name, err)
	}

	msg := nats.NewMsg(n.subject)
	msg.Data = body
	msg.Header.Set(HeaderEventName, name)

	if err := n.pub.PublishMsg(msg); err != nil {
		return fmt.Errorf("notify: nats publish: %w", err)
	}
	if err := n.pub.Flush(); err != nil {
		return fmt.Errorf("notify: nats flush: %w", err)
	}
	return nil
}

// Close drains the connection opened by ConnectNATS. Notifiers built with
// NewNATS leave their publisher alone.
func (n *NATS) Close() error {
	if n.conn == nil {
		return nil
	}
	err := n.conn.Drain()
	n.conn = nil
	return err
}

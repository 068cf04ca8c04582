package mail

import (
	"encoding/json"
	"slices"
)

// EventSendMessage is the name SendMailEvent is fired under.
const EventSendMessage = "mail.send_message"

// SendMailEvent is a snapshot of a message taken when it was sent.
type SendMailEvent struct {
	to      []Recipient
	subject string
	message string
	result  bool
}

func NewSendMailEvent(to []Recipient, subject, message string, result bool) *SendMailEvent {
	return &SendMailEvent{
		to:      slices.Clone(to),
		subject: subject,
		message: message,
		result:  result,
	}
}

func (e *SendMailEvent) To() []Recipient {
	return slices.Clone(e.to)
}

func (e *SendMailEvent) Subject() string {
	return e.subject
}

func (e *SendMailEvent) Message() string {
	return e.message
}

// Result reports whether delivery succeeded.
func (e *SendMailEvent) Result() bool {
	return e.result
}

func (e *SendMailEvent) MarshalJSON() ([]byte, error) {
	to := e.to
	if to == nil {
		to = []Recipient{}
	}
	return json.Marshal(struct {
		To      []Recipient `json:"to"`
		Subject string      `json:"subject"`
		Message string      `json:"message"`
		Result  bool        `json:"result"`
	}{to, e.subject, e.message, e.result})
}

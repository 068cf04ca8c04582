package mail

// Listener is called by a Composer at each point of its lifecycle. Embed
// NopListener to implement only the callbacks you need.
type Listener interface {
	OnInit(c *Composer)
	OnRecipientAdded(r Recipient, accepted bool)
	OnSubjectSet(subject string)
	OnBodySet(body string)
	OnAttachmentAdded(path string)
	OnCCAdded(r Recipient)
	OnBCCAdded(r Recipient)
	BeforeSend(c *Composer)
	AfterSend(c *Composer, sent bool)
}

// NopListener ignores every callback.
type NopListener struct{}

func (NopListener) OnInit(*Composer)                 {}
func (NopListener) OnRecipientAdded(Recipient, bool) {}
func (NopListener) OnSubjectSet(string)              {}
func (NopListener) OnBodySet(string)                 {}
func (NopListener) OnAttachmentAdded(string)         {}
func (NopListener) OnCCAdded(Recipient)              {}
func (NopListener) OnBCCAdded(Recipient)             {}
func (NopListener) BeforeSend(*Composer)             {}
func (NopListener) AfterSend(*Composer, bool)        {}

// RecipientFilter may rewrite a To recipient before it is recorded.
type RecipientFilter func(Recipient) Recipient

// AttachmentFilter may rewrite an attachment path before it is registered.
type AttachmentFilter func(path string) string

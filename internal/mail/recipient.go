package mail

import (
	"errors"
	"fmt"
	stdmail "net/mail"
)

// ErrInvalidRecipient is returned when a recipient is neither a plain address
// nor an address/name pair.
var ErrInvalidRecipient = errors.New("invalid recipient")

// Recipient is either a PlainAddress or a NamedAddress.
type Recipient interface {
	fmt.Stringer
	isRecipient()
}

// PlainAddress is a bare email address.
type PlainAddress string

func (PlainAddress) isRecipient() {}

func (a PlainAddress) String() string {
	return string(a)
}

// NamedAddress is an email address with a display name.
type NamedAddress struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

func (NamedAddress) isRecipient() {}

func (a NamedAddress) String() string {
	if a.Name == "" {
		return a.Address
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Address)
}

// split returns the address and display name carried by r.
func split(r Recipient) (address, name string, err error) {
	switch r := r.(type) {
	case PlainAddress:
		return string(r), "", nil
	case NamedAddress:
		return r.Address, r.Name, nil
	}
	return "", "", fmt.Errorf("%w: %T", ErrInvalidRecipient, r)
}

// ParseRecipient converts loosely typed input into a Recipient. Accepted forms
// are a string, a Recipient, or a mapping holding "address" (or "email") and an
// optional "name".
func ParseRecipient(v any) (Recipient, error) {
	switch r := v.(type) {
	case PlainAddress:
		return r, nil
	case NamedAddress:
		return r, nil
	case string:
		return PlainAddress(r), nil
	case map[string]string:
		pair := make(map[string]any, len(r))
		for k, val := range r {
			pair[k] = val
		}
		return fromPair(pair)
	case map[string]any:
		return fromPair(r)
	}
	return nil, fmt.Errorf("%w: expected a string or an address/name pair, got %T", ErrInvalidRecipient, v)
}

func fromPair(pair map[string]any) (Recipient, error) {
	raw, ok := pair["address"]
	if !ok {
		raw, ok = pair["email"]
	}
	if !ok {
		return nil, fmt.Errorf("%w: pair has no address", ErrInvalidRecipient)
	}
	address, ok := raw.(string)
	if !ok {
		return nil, fmt.Errorf("%w: address must be a string, got %T", ErrInvalidRecipient, raw)
	}

	var name string
	if rawName, ok := pair["name"]; ok && rawName != nil {
		if name, ok = rawName.(string); !ok {
			return nil, fmt.Errorf("%w: name must be a string, got %T", ErrInvalidRecipient, rawName)
		}
	}
	return NamedAddress{Address: address, Name: name}, nil
}

// ParseAddressList parses an RFC 5322 address list such as
// "John Smith <john@example.com>, jane@example.com".
func ParseAddressList(list string) ([]Recipient, error) {
	addrs, err := stdmail.ParseAddressList(list)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRecipient, err)
	}

	out := make([]Recipient, 0, len(addrs))
	for _, a := range addrs {
		if a.Name == "" {
			out = append(out, PlainAddress(a.Address))
			continue
		}
		out = append(out, NamedAddress{Address: a.Address, Name: a.Name})
	}
	return out, nil
}

package config

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/go-viper/mapstructure/v2"
)

// ErrInvalidConfiguration is returned when a configuration value is not a
// key/value mapping or one of its recognised entries cannot be decoded.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Recognised configuration keys.
const (
	KeyFromEmail = "from_email"
	KeyFromName  = "from_name"
	KeyIsHTML    = "is_html"
	KeySMTP      = "smtp"
	KeyReplyTo   = "reply_to"
)

// Security modes accepted in the smtp block.
const (
	SecuritySSL = "ssl"
	SecurityTLS = "tls"
)

// SMTPSettings is the nested smtp block.
type SMTPSettings struct {
	Host     string `mapstructure:"host" json:"host"`
	Auth     bool   `mapstructure:"auth" json:"auth"`
	Username string `mapstructure:"username" json:"username"`
	Password string `mapstructure:"password" json:"password"`
	Security string `mapstructure:"security" json:"security"`
	Port     int    `mapstructure:"port" json:"port"`

	// Timeout in seconds, zero keeps the transport default.
	Timeout   int    `mapstructure:"timeout" json:"timeout,omitempty"`
	LocalName string `mapstructure:"local_name" json:"local_name,omitempty"`
}

// ReplyTo is the nested reply_to block.
type ReplyTo struct {
	Email string `mapstructure:"email" json:"email"`
	Name  string `mapstructure:"name" json:"name"`
}

// Settings is the typed form of a composer configuration mapping. Optional
// blocks are nil when absent or empty.
type Settings struct {
	FromEmail string        `mapstructure:"from_email" json:"from_email"`
	FromName  string        `mapstructure:"from_name" json:"from_name"`
	IsHTML    bool          `mapstructure:"is_html" json:"is_html"`
	SMTP      *SMTPSettings `mapstructure:"smtp" json:"smtp,omitempty"`
	ReplyTo   *ReplyTo      `mapstructure:"reply_to" json:"reply_to,omitempty"`

	// Unknown lists keys that were present but not recognised, sorted.
	Unknown []string `mapstructure:"-" json:"-"`
}

// IsSMTP reports whether an smtp block was supplied.
func (s Settings) IsSMTP() bool {
	return s.SMTP != nil
}

// Parse converts raw into Settings. raw may be a Settings value, a pointer to
// one, nil (empty configuration) or any map keyed by strings. Unrecognised keys
// never fail; they are collected in Settings.Unknown.
func Parse(raw any) (Settings, error) {
	switch v := raw.(type) {
	case nil:
		return Settings{}, nil
	case Settings:
		return v, nil
	case *Settings:
		if v == nil {
			return Settings{}, nil
		}
		return *v, nil
	}

	m, ok := toStringMap(raw)
	if !ok {
		return Settings{}, fmt.Errorf("%w: expected a key/value mapping, got %T", ErrInvalidConfiguration, raw)
	}

	known := make(map[string]any, len(m))
	var unknown []string
	for key, value := range m {
		switch key {
		case KeyFromEmail, KeyFromName, KeyIsHTML:
			known[key] = value
		case KeySMTP, KeyReplyTo:
			if isEmpty(value) {
				continue
			}
			nested, ok := toStringMap(value)
			if !ok {
				return Settings{}, fmt.Errorf("%w: %q must be a mapping, got %T", ErrInvalidConfiguration, key, value)
			}
			known[key] = nested
		default:
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	var s Settings
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
	})
	if err != nil {
		return Settings{}, err
	}
	if err := decoder.Decode(known); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	s.Unknown = unknown

	return s, nil
}

func toStringMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[k] = val
		}
		return out, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// isEmpty follows the loose emptiness used for the optional blocks: nil, zero
// scalars and empty collections all count as absent.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return rv.IsZero()
}

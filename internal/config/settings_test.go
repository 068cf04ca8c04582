package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() map[string]any {
	return map[string]any{
		"from_email": "no-reply@rawmail.dev",
		"from_name":  "Rawmail",
		"smtp": map[string]any{
			"auth":     true,
			"host":     "smtp.gmail.com",
			"username": "username",
			"password": "password",
			"security": "ssl",
			"port":     "465",
		},
	}
}

func TestParse_RecognisedKeys(t *testing.T) {
	t.Parallel()

	raw := testConfig()
	raw["is_html"] = 1
	raw["reply_to"] = map[string]string{"email": "support@rawmail.dev", "name": "Support"}

	s, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "no-reply@rawmail.dev", s.FromEmail)
	assert.Equal(t, "Rawmail", s.FromName)
	assert.True(t, s.IsHTML)
	require.True(t, s.IsSMTP())
	assert.Equal(t, SMTPSettings{
		Host:     "smtp.gmail.com",
		Auth:     true,
		Username: "username",
		Password: "password",
		Security: "ssl",
		Port:     465,
	}, *s.SMTP)
	require.NotNil(t, s.ReplyTo)
	assert.Equal(t, ReplyTo{Email: "support@rawmail.dev", Name: "Support"}, *s.ReplyTo)
	assert.Empty(t, s.Unknown)
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	t.Parallel()

	raw := testConfig()
	raw["db_host"] = "localhost"
	raw["app_name"] = map[string]any{"nested": true}

	s, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, []string{"app_name", "db_host"}, s.Unknown)
	assert.Equal(t, "no-reply@rawmail.dev", s.FromEmail)
}

func TestParse_EmptyBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		smtp any
	}{
		{name: "absent"},
		{name: "nil", smtp: nil},
		{name: "empty map", smtp: map[string]any{}},
		{name: "empty string", smtp: ""},
		{name: "false", smtp: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			raw := map[string]any{"from_email": "a@example.com"}
			if tt.name != "absent" {
				raw["smtp"] = tt.smtp
				raw["reply_to"] = tt.smtp
			}

			s, err := Parse(raw)
			require.NoError(t, err)
			assert.False(t, s.IsSMTP())
			assert.Nil(t, s.ReplyTo)
		})
	}
}

func TestParse_InvalidConfiguration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
	}{
		{name: "string", raw: "from_email=a@example.com"},
		{name: "int", raw: 42},
		{name: "slice", raw: []string{"from_email"}},
		{name: "int keyed map", raw: map[int]string{1: "a"}},
		{name: "scalar smtp block", raw: map[string]any{"smtp": "smtp.gmail.com"}},
		{name: "undecodable port", raw: map[string]any{"smtp": map[string]any{"port": "not-a-port"}}},
		{name: "undecodable is_html", raw: map[string]any{"is_html": "yes"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.raw)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
		})
	}
}

func TestParse_TypedInputs(t *testing.T) {
	t.Parallel()

	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Settings{}, s)

	in := Settings{FromEmail: "a@example.com"}
	s, err = Parse(in)
	require.NoError(t, err)
	assert.Equal(t, in, s)

	s, err = Parse(&in)
	require.NoError(t, err)
	assert.Equal(t, in, s)

	type labels map[string]string
	s, err = Parse(labels{"from_name": "Named"})
	require.NoError(t, err)
	assert.Equal(t, "Named", s.FromName)
}

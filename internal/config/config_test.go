package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_JSON(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "rawmail.json")
	require.NoError(t, os.WriteFile(filename, []byte(`{
	"from_email": "no-reply@rawmail.dev",
	"from_name": "Rawmail",
	"smtp": {"host": "smtp.gmail.com", "auth": true, "username": "u", "password": "p", "security": "ssl", "port": "465"},
	"nats": {"url": "nats://127.0.0.1:4222"},
	"theme": "dark"
}`), 0600))

	f, err := Load(filename)
	require.NoError(t, err)

	assert.Equal(t, "no-reply@rawmail.dev", f.Settings.FromEmail)
	assert.Equal(t, 465, f.Settings.SMTP.Port)
	assert.Equal(t, filepath.Join(filepath.Dir(filename), "rawmail.log"), f.LogPath)
	assert.Equal(t, "nats://127.0.0.1:4222", f.NATSURL)
	assert.Equal(t, DefaultNATSSubject, f.NATSSubject)
	assert.Equal(t, []string{"nats", "theme"}, f.Settings.Unknown)
	assert.Contains(t, f.Raw, "smtp")

	p := NewConfigProvider(f)
	assert.Equal(t, "smtp.gmail.com", p.GetSMTPHost())
	assert.Equal(t, 465, p.GetSMTPPort())
	assert.True(t, p.IsSMTP())
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "rawmail.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(`from_email: a@example.com
is_html: true
reply_to:
  email: b@example.com
  name: B
log_path: /tmp/rawmail-test.log
`), 0600))

	f, err := Load(filename)
	require.NoError(t, err)
	assert.True(t, f.Settings.IsHTML)
	assert.False(t, f.Settings.IsSMTP())
	assert.Equal(t, "b@example.com", f.Settings.ReplyTo.Email)
	assert.Equal(t, "/tmp/rawmail-test.log", f.LogPath)
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "rawmail.json")
	in := &File{Settings: NewSettings()}
	in.Settings.FromEmail = "a@example.com"
	in.Settings.SMTP.Username = "a@example.com"
	in.Settings.SMTP.Timeout = 300
	in.Settings.SMTP.LocalName = "mail.example.com"
	in.Settings.ReplyTo = &ReplyTo{Email: "b@example.com", Name: "B"}

	require.NoError(t, Save(in, filename))

	out, err := Load(filename)
	require.NoError(t, err)
	assert.Equal(t, in.Settings.FromEmail, out.Settings.FromEmail)
	assert.Equal(t, *in.Settings.SMTP, *out.Settings.SMTP)
	assert.Equal(t, *in.Settings.ReplyTo, *out.Settings.ReplyTo)
	assert.Equal(t, 300, out.Settings.SMTP.Timeout)
	assert.Equal(t, "mail.example.com", out.Settings.SMTP.LocalName)
}

func TestSave_OmitsUnsetSMTPExtras(t *testing.T) {
	t.Parallel()

	filename := filepath.Join(t.TempDir(), "rawmail.json")
	require.NoError(t, Save(&File{Settings: NewSettings()}, filename))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "timeout")
	assert.NotContains(t, string(data), "local_name")
}

func TestFile_IgnoredKeys(t *testing.T) {
	t.Parallel()

	f := &File{Settings: Settings{Unknown: []string{"log_path", "nats", "theme"}}}
	assert.Equal(t, []string{"theme"}, f.IgnoredKeys())
	assert.Empty(t, (&File{}).IgnoredKeys())
}

package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ryan-gang/rawmail/internal/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(&buf, false)
	l.Info("mail", "sent")
	l.Debugf("hidden %d", 1)
	l.Warnf("retry %s", "later")

	out := buf.String()
	assert.Contains(t, out, "mail sent")
	assert.Contains(t, out, "retry later")
	assert.NotContains(t, out, "hidden")

	buf.Reset()
	l = New(&buf, true)
	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestLogger_InitWritesFile(t *testing.T) {
	t.Parallel()

	logPath := filepath.Join(t.TempDir(), "logs", "rawmail.log")
	l := &Logger{}
	require.NoError(t, l.Init(logPath, false))
	l.Errorf("delivery failed: %v", errors.New("boom"))
	require.NoError(t, l.Close())
	require.NoError(t, l.Close())

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "delivery failed: boom")
}

func TestMailListener_LogsLifecycle(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := NewMailListener(New(&buf, true))

	c, err := mail.New(map[string]any{"from_email": "no-reply@example.com"},
		mail.WithListener(l),
		mail.WithNotifier(l),
	)
	require.NoError(t, err)

	c.SetSubject("Quarterly report")
	_, err = c.AddTo(mail.PlainAddress("not-an-address"))
	require.NoError(t, err)
	_, err = c.AddTo(mail.NamedAddress{Address: "a@example.com", Name: "A"})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `mailer ready, from "no-reply@example.com" via sendmail`)
	assert.Contains(t, out, `subject set to "Quarterly report"`)
	assert.Contains(t, out, "recipient not-an-address was rejected")
	assert.Contains(t, out, "added recipient A <a@example.com>")

	l.Fire(mail.EventSendMessage, mail.NewSendMailEvent(c.To(), c.Subject(), c.Body(), false))
	assert.Contains(t, buf.String(), "mail.send_message: 2 recipient(s), result false")
}

package util

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatError(t *testing.T) {
	t.Parallel()

	got := FormatError(MailError, "sending mail", errors.New("connection refused"))
	assert.Equal(t, "Mail error: sending mail - connection refused", got)
}

func TestFormatErrorf(t *testing.T) {
	t.Parallel()

	got := FormatErrorf(FileError, "accessing file", "couldn't find file %s", "report.pdf")
	assert.Equal(t, "File error: accessing file - couldn't find file report.pdf", got)
}

package mail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "blocks and breaks",
			in:   `<html><head><title>T</title><style>p{}</style></head><body><h1>Hello</h1><p>World<br>again</p><script>x()</script></body></html>`,
			want: "Hello\nWorld\nagain",
		},
		{
			name: "links keep their target",
			in:   `<p>Read the <a href="https://example.com/docs?a=1&amp;b=2">docs</a></p>`,
			want: "Read the docs (https://example.com/docs?a=1&b=2)",
		},
		{
			name: "bare link",
			in:   `<a href="https://example.com">https://example.com</a>`,
			want: "https://example.com",
		},
		{
			name: "list",
			in:   "<ul>\n  <li>one</li>\n  <li>two   words</li>\n</ul>",
			want: "one\ntwo words",
		},
		{
			name: "plain text passes through",
			in:   "just text",
			want: "just text",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}

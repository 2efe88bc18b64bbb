package strutil_test

import (
	"strings"
	"testing"

	"bennypowers.dev/vhls/internal/strutil"
	"github.com/stretchr/testify/assert"
)

func TestConsolidateMultiLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "single line is trimmed",
			input: "   Hello world   ",
			want:  "Hello world",
		},
		{
			name:  "text lines join with a space",
			input: "This is a relatively long line of text.\n      This is some padding at the end.",
			want:  "This is a relatively long line of text. This is some padding at the end.",
		},
		{
			name:  "explicit space markers become spaces",
			input: "I am a paragraph with some{\" \"}\n      <b>bold</b>{\" \"}\n      text",
			want:  "I am a paragraph with some <b>bold</b> text",
		},
		{
			name:  "lines starting a tag join without a space",
			input: "Hello\n<b>world</b>",
			want:  "Hello<b>world</b>",
		},
		{
			name:  "lines after a tag join without a space",
			input: "<b>Hello</b>\nworld",
			want:  "<b>Hello</b>world",
		},
		{
			name:  "multi-line attributes fold into the tag",
			input: "<a\n  href=\"/foo\"\n  target=\"_blank\"\n>\n  has\n</a>",
			want:  `<a href="/foo" target="_blank" >has</a>`,
		},
		{
			name:  "carriage returns are trimmed",
			input: "Hello\r\nworld\r\n",
			want:  "Hello world ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strutil.ConsolidateMultiLine(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short strings are untouched", "Hello", 20, "Hello"},
		{"exact length is untouched", "Hello", 5, "Hello"},
		{"long strings are cut", "Hello wonderful world", 9, "Hello won..."},
		{"cut on a space drops the space", "Hello wonderful world", 6, "Hello..."},
		{"zero disables truncation", "Hello wonderful world", 0, "Hello wonderful world"},
		{"negative disables truncation", "Hello wonderful world", -1, "Hello wonderful world"},
		{"counts runes not bytes", "héllo wörld", 4, "héll..."},
		{"trailing dots within the marker allowance are kept", "abcdefgh...", 9, "abcdefgh..."},
		{"trailing dots beyond the allowance are cut", "abcdefghijklm...", 9, "abcdefghi..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, strutil.Truncate(tt.input, tt.maxLen))
		})
	}
}

func TestTruncateNeverEndsWithSpaceBeforeEllipsis(t *testing.T) {
	// the 20th character is a space
	input := "This is a long text that keeps going"
	assert.Equal(t, ' ', rune(input[19]))

	got := strutil.Truncate(input, 20)
	assert.False(t, strings.HasSuffix(got, " ..."), "got %q", got)
	assert.Equal(t, "This is a long text...", got)

	doubleSpace := "This is a long tex   and more"
	assert.False(t, strings.HasSuffix(strutil.Truncate(doubleSpace, 20), " ..."))
}

func TestTruncateIsIdempotent(t *testing.T) {
	inputs := []string{
		"This is a relatively long line of text. This is some padding at the end.",
		"This is a long text that keeps going",
		"Short",
		"Ends with dots...",
		"exactly twenty chars",
		"   ",
		"",
	}
	for _, input := range inputs {
		for _, n := range []int{1, 5, 10, 17, 20, 40} {
			once := strutil.Truncate(input, n)
			assert.Equal(t, once, strutil.Truncate(once, n), "input %q n=%d", input, n)
		}
	}
}

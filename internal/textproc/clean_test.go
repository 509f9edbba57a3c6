package textproc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"bold and code", "**bold** and __also__ and `code`", "bold and also and code"},
		{"heading", "# Heading\ntext", "Heading\ntext"},
		{"deep heading", "###### Deep\nbody", "Deep\nbody"},
		{"seven hashes kept", "####### not a heading", "####### not a heading"},
		{"hash without space kept", "#hashtag", "#hashtag"},
		{"stacked heading markers strip once", "# # Title", "# Title"},
		{"blank run collapsed", "a\n\n\n\nb", "a\n\nb"},
		{"two blank lines kept", "a\n\nb", "a\n\nb"},
		{"bullet glyph", "• one\n• two", "- one\n- two"},
		{"star bullets", "* one\n  * two", "- one\n- two"},
		{"surrounding whitespace", "  \n plain text \n\n", "plain text"},
		{"error marker unchanged", "[Error calling model: timeout]", "[Error calling model: timeout]"},
		{"non greedy bold", "**a** b **c**", "a b c"},
		{"no-break space after hashes", "#\u00a0Heading\ntext", "Heading\ntext"},
		{"ideographic space before hashes", "\u3000## Title\nbody", "Title\nbody"},
		{"no-break space after star", "*\u00a0one\n*\u2003two", "- one\n- two"},
		{"unicode edge whitespace trimmed", "\u00a0\u2028plain\u3000\x1f", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.in))
		})
	}
}

func TestCleanPtr(t *testing.T) {
	assert.Equal(t, "", CleanPtr(nil))

	s := "**x**"
	assert.Equal(t, "x", CleanPtr(&s))
}

// Clean is not idempotent in general ("# # Title" cleans to "# Title"), but
// typical model output is unchanged by a second pass.
func TestClean_NormalizedOutputIsStable(t *testing.T) {
	inputs := []string{
		"## Title\n\n\n\n**Bold** text with `code`\n* item\n• item",
		"- already\n- plain",
		"",
	}
	for _, in := range inputs {
		once := Clean(in)
		assert.Equal(t, once, Clean(once))
	}
}

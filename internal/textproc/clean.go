package textproc

import (
	"regexp"
	"strings"
	"unicode"
)

// space matches the same characters as Unicode-aware \s: RE2's \s is
// ASCII only.
const space = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	boldStarPattern       = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldUnderscorePattern = regexp.MustCompile(`__(.*?)__`)
	headingPattern        = regexp.MustCompile(`(?m)^` + space + `*#{1,6}` + space + `+`)
	starBulletPattern     = regexp.MustCompile(`(?m)^` + space + `*\*` + space + `+`)
	blankRunPattern       = regexp.MustCompile(`\n{3,}`)
)

// Clean strips markdown formatting from model output, leaving plain prose
// and "- " bullets.
func Clean(text string) string {
	if text == "" {
		return ""
	}

	t := boldStarPattern.ReplaceAllString(text, "$1")
	t = boldUnderscorePattern.ReplaceAllString(t, "$1")
	t = strings.ReplaceAll(t, "`", "")
	t = headingPattern.ReplaceAllString(t, "")
	t = strings.ReplaceAll(t, "•", "-")
	t = starBulletPattern.ReplaceAllString(t, "- ")
	t = blankRunPattern.ReplaceAllString(t, "\n\n")

	return strings.TrimFunc(t, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// CleanPtr is Clean for optional input; nil yields "".
func CleanPtr(text *string) string {
	if text == nil {
		return ""
	}
	return Clean(*text)
}

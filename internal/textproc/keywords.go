package textproc

import (
	"regexp"
	"sort"
	"strings"
)

const (
	DefaultKeywordCount     = 12
	DefaultKeywordMinLength = 5
	DefaultShortWordLength  = 4
)

var tokenPattern = regexp.MustCompile(`[A-Za-z0-9]+`)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		"a", "an", "the", "and", "or", "but", "if", "then", "so", "to", "of", "in", "on", "at",
		"for", "from", "with", "without",
		"is", "are", "was", "were", "be", "been", "being", "do", "does", "did", "can", "could",
		"should", "would", "will", "may", "might",
		"please", "respond", "answer", "include", "exact", "official", "approved", "guideline", "url",
		"hindi", "english", "french", "swahili", "kiswahili",
	} {
		stopWords[w] = struct{}{}
	}
}

// Tokenize returns the maximal runs of ASCII letters and digits in text.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(text, -1)
}

// IsStopWord reports whether word is ignored by keyword extraction,
// regardless of case.
func IsStopWord(word string) bool {
	_, ok := stopWords[strings.ToLower(word)]
	return ok
}

// LongestWords picks up to n salient tokens of at least minLen characters,
// longest first. Ties are ordered case-insensitively; duplicates (by
// lowercase form) keep their first spelling.
func LongestWords(text string, n, minLen int) []string {
	if n <= 0 {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tok := range Tokenize(text) {
		lower := strings.ToLower(tok)
		if _, stop := stopWords[lower]; stop {
			continue
		}
		if len(tok) < minLen {
			continue
		}
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, tok)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if len(out[i]) != len(out[j]) {
			return len(out[i]) > len(out[j])
		}
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RemoveShortWordsPreserveOrder keeps tokens longer than minLenExclusive in
// their original order, joined by single spaces.
func RemoveShortWordsPreserveOrder(text string, minLenExclusive int) string {
	toks := Tokenize(text)
	kept := make([]string, 0, len(toks))
	for _, tok := range toks {
		if len(tok) > minLenExclusive {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}

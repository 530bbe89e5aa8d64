package content

import (
	"regexp"
	"strings"
)

// MaxSourceLength is the character budget for the assembled source text.
const MaxSourceLength = 12000

// Ellipsis marks a truncation cut.
const Ellipsis = "…"

var (
	crlfRe    = regexp.MustCompile(`\r\n?`)
	newlineRe = regexp.MustCompile(`\n{3,}`)
	tabRe     = regexp.MustCompile(`[\t\f\v]+`)
	spaceRe   = regexp.MustCompile(` {2,}`)
)

// Normalize canonicalizes whitespace: line endings become \n, runs of three
// or more newlines collapse to two, runs of tab/form-feed/vertical-tab
// become a single space, runs of spaces collapse to one, and the result is
// trimmed. Pure and idempotent.
func Normalize(text string) string {
	text = crlfRe.ReplaceAllString(text, "\n")
	text = newlineRe.ReplaceAllString(text, "\n\n")
	text = tabRe.ReplaceAllString(text, " ")
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate bounds text to maxLength characters, preferring a sentence
// boundary past 60% of the budget, then a word boundary, with the cut point
// never earlier than 80% of the budget. A truncated result ends with a
// single ellipsis character.
func Truncate(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	prefix := runes[:maxLength]

	cut := -1
	if i := lastIndexRune(prefix, '.'); float64(i) > 0.6*float64(maxLength) {
		cut = i + 1
	} else {
		cut = lastIndexRune(prefix, ' ')
	}
	if floor := int(0.8 * float64(maxLength)); cut < floor {
		cut = floor
	}
	return string(prefix[:cut]) + Ellipsis
}

// AssembleSource combines normalized notes and URL-derived text into one
// bounded blob. Each present input becomes a labelled block; blocks are
// joined by a blank line and the whole is truncated to MaxSourceLength. An
// empty result means there is nothing to analyze and generation must not be
// attempted.
func AssembleSource(notes, urlText, urlTitle string) string {
	cleanedNotes := Normalize(notes)
	cleanedURLText := Normalize(urlText)

	var blocks []string
	if cleanedNotes != "" {
		blocks = append(blocks, "NOTES:\n"+cleanedNotes)
	}
	if cleanedURLText != "" {
		title := strings.TrimSpace(urlTitle)
		if title == "" {
			title = "URL"
		}
		blocks = append(blocks, "SOURCE ("+title+"):\n"+cleanedURLText)
	}
	return Truncate(strings.Join(blocks, "\n\n"), MaxSourceLength)
}

func lastIndexRune(rs []rune, r rune) int {
	for i := len(rs) - 1; i >= 0; i-- {
		if rs[i] == r {
			return i
		}
	}
	return -1
}

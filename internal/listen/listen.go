// Package listen provides the utterance sources the assistant reads from:
// the microphone, typed lines and pre-recorded clips.
package listen

import (
	"regexp"
	"strings"
	"unicode"
)

var annotationRe = regexp.MustCompile(`\[[^\]]*\]|\([^)]*\)|\*[^*]*\*`)

// Normalize lowercases a transcript and removes whisper annotations such as
// [BLANK_AUDIO] along with punctuation. A dot or underscore between two
// letters or digits is kept, so "john@gmail.com" and "report.pdf" survive.
func Normalize(text string) string {
	runes := []rune(strings.ToLower(annotationRe.ReplaceAllString(text, " ")))

	var b strings.Builder
	for i, r := range runes {
		switch {
		case wordRune(r), unicode.IsSpace(r), strings.ContainsRune(`'@+-`, r):
			b.WriteRune(r)
		case (r == '.' || r == '_') && i > 0 && i < len(runes)-1 && wordRune(runes[i-1]) && wordRune(runes[i+1]):
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func wordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// trimSentence drops trailing sentence punctuation from typed text.
func trimSentence(text string) string {
	return strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text), "?!.,"))
}

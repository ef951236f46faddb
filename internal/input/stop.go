// Package input provides pure helpers over raw candidate input: stop-intent
// recognition and normalization of optional JSON-line introductions.
package input

import "strings"

// stopWords end the session on an exact first-word match.
var stopWords = map[string]struct{}{
	"стоп":      {},
	"stop":      {},
	"завершить": {},
	"закончить": {},
	"конец":     {},
	"хватит":    {},
	"exit":      {},
	"quit":      {},
	"finish":    {},
	"bye":       {},
}

// stopPhrases end the session on a substring match anywhere in the input.
var stopPhrases = []string{
	"давай фидбэк", "дай фидбэк", "хочу фидбэк",
	"подведи итог", "результаты интервью",
	"останови интервью", "прекрати интервью",
}

// asciiPunctuation matches Python's string.punctuation, which the original
// stop check stripped from the end of the input.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// IsStopCommand reports whether the candidate wants to end the interview.
// Matching is case-insensitive with trailing punctuation stripped: the first
// word is checked against the stop-word set exactly, then the whole text is
// scanned for stop phrases.
func IsStopCommand(text string) bool {
	if text == "" {
		return false
	}

	clean := strings.TrimRight(strings.TrimSpace(strings.ToLower(text)), asciiPunctuation)

	words := strings.Fields(clean)
	if len(words) == 0 {
		return false
	}

	if _, ok := stopWords[words[0]]; ok {
		return true
	}

	for _, phrase := range stopPhrases {
		if strings.Contains(clean, phrase) {
			return true
		}
	}

	return false
}

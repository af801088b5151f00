package content

import (
	"strings"
	"unicode"
)

const (
	DefaultWordsPerMinute = 200
	DefaultCharsPerMinute = 500
)

// ReadingTime estimates minutes to read text. Text containing Japanese or Chinese
// characters is measured in non-whitespace characters per minute, anything else in
// words per minute. The result is rounded up and is never below 1.
func ReadingTime(text string, wordsPerMinute, charsPerMinute int) int {
	if wordsPerMinute <= 0 {
		wordsPerMinute = DefaultWordsPerMinute
	}
	if charsPerMinute <= 0 {
		charsPerMinute = DefaultCharsPerMinute
	}
	var count, rate int
	if hasCJK(text) {
		for _, r := range text {
			if !unicode.IsSpace(r) {
				count++
			}
		}
		rate = charsPerMinute
	} else {
		count = len(strings.Fields(text))
		rate = wordsPerMinute
	}
	minutes := (count + rate - 1) / rate
	if minutes < 1 {
		return 1
	}
	return minutes
}

func hasCJK(text string) bool {
	for _, r := range text {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

package discord

import (
	"strings"
	"unicode/utf8"
)

const maxMessageLength = 2000

// splitMessage cuts text into chunks of at most limit runes, preferring
// paragraph then line boundaries.
func splitMessage(text string, limit int) []string {
	if limit <= 0 {
		limit = maxMessageLength
	}
	if utf8.RuneCountInString(text) <= limit {
		return []string{text}
	}

	var chunks []string
	for utf8.RuneCountInString(text) > limit {
		byteLimit := runeByteOffset(text, limit)
		cut := byteLimit

		if idx := strings.LastIndex(text[:byteLimit], "\n\n"); idx > 0 {
			cut = idx + 2
		} else if idx := strings.LastIndex(text[:byteLimit], "\n"); idx > 0 {
			cut = idx + 1
		}

		chunks = append(chunks, text[:cut])
		text = text[cut:]
	}
	if len(text) > 0 {
		chunks = append(chunks, text)
	}
	return chunks
}

func runeByteOffset(s string, n int) int {
	offset := 0
	for i := 0; i < n && offset < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}
	return offset
}

package chat

import (
	"strings"
	"unicode/utf8"
)

const (
	fallbackTitlePrefix = "Meeting Summary"
	maxTitleExcerpt     = 50
)

// markers are checked in order; "titled" must win over its prefix "title"
var titleMarkers = []string{"titled", "title"}

const titleCutset = " \t\r\n\"'`“”‘’"

// ExtractTitle returns the text after the first title marker with surrounding
// whitespace and quotes removed, keeping the message's original casing.
// It returns "" when the message names no title.
func ExtractTitle(message string) string {
	for _, marker := range titleMarkers {
		idx := indexFold(message, marker)
		if idx < 0 {
			continue
		}
		t := strings.Trim(message[idx+len(marker):], titleCutset)
		t = strings.TrimLeft(t, ":=")
		return strings.Trim(t, titleCutset)
	}
	return ""
}

// FallbackTitle builds a title from the first non-blank transcript line
func FallbackTitle(transcript string) string {
	for _, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return fallbackTitlePrefix + " - " + truncate(line, maxTitleExcerpt)
	}
	return fallbackTitlePrefix
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:max])) + "..."
}

// indexFold is an ASCII case-insensitive strings.Index that returns a byte
// offset valid in s itself
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if asciiEqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

func asciiEqualFold(a, b string) bool {
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

package util

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxFileNameRunes = 128

// SanitizeFileName removes path separators and control characters, rejects
// traversal patterns and caps the name length while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if utf8.RuneCountInString(s) > maxFileNameRunes {
		runes := []rune(s)
		ext := ""
		if i := strings.LastIndexByte(s, '.'); i > 0 && len(s)-i <= 8 {
			ext = s[i:]
		}
		s = string(runes[:maxFileNameRunes-utf8.RuneCountInString(ext)]) + ext
	}
	return s, nil
}

package util

import (
	"errors"
	"strings"
)

const maxFileNameLength = 255

// SanitizeFileName removes path separators and rejects traversal patterns.
// Uploaded contract names end up in logs and stored records, so control
// characters are stripped and the length is capped.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if len(s) > maxFileNameLength {
		s = s[:maxFileNameLength]
	}
	return s, nil
}

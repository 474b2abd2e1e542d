package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength is the longest accepted document name.
const MaxNameLength = 128

// ValidateDocumentName checks that name is safe to use as a storage key and
// as a file name inside a models directory.
//
// Rejected: empty names, control characters, path separators, "..", and
// names longer than [MaxNameLength].
func ValidateDocumentName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "document name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidName, "document name too long (max %d characters)", MaxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "document name contains control characters")
		}
	}
	for _, p := range []string{"..", "/", "\\", "\x00"} {
		if strings.Contains(name, p) {
			return New(ErrCodeInvalidName, "document name contains invalid characters: %q", p)
		}
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidName, "document name cannot start with a dot")
	}
	return nil
}

package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateRuleName validates a rule identifier for safety and correctness.
// Rule identifiers are fully qualified class names of the specified crypto
// API (e.g. "javax.crypto.Cipher"); identity is exact string equality.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 256 characters
func ValidateRuleName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidRule, "rule name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidRule, "rule name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidRule, "rule name contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidRule, "rule name cannot contain whitespace")
		}
	}

	return nil
}

// universeNameRegex matches valid universe names used as store keys.
var universeNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

// ValidateUniverseName validates a universe name used to address a stored
// rule universe. It ensures the name is a simple token without path
// components, suitable for file names, cache keys, and database keys.
func ValidateUniverseName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidUniverse, "universe name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidUniverse, "universe name cannot contain path separators")
	}

	if !universeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidUniverse, "invalid universe name: %q", name)
	}

	return nil
}

package errors

import (
	"strings"
	"unicode"
)

// maxLabelLength bounds a label so it stays a valid single path element on
// common filesystems.
const maxLabelLength = 255

// ValidateLabel validates a sample label before it is used as a directory name.
//
// Labels end up as path elements under images<N>/ and the split directories,
// so anything that would escape or collapse that element is rejected:
//   - No empty labels, "." or ".."
//   - No path separators (/ or \)
//   - No null bytes or control characters
//   - Maximum length of 255 bytes
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d bytes): %.32q...", maxLabelLength, label)
	}
	if label == "." || label == ".." {
		return New(ErrCodeInvalidInput, "label cannot be %q", label)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label %q contains control characters", label)
		}
	}
	if strings.ContainsAny(label, "/\\") {
		return New(ErrCodeInvalidInput, "label %q contains path separators", label)
	}
	return nil
}

// ValidateRatio checks that a split proportion lies in [0, 1].
func ValidateRatio(name string, v float64) error {
	if v < 0 || v > 1 || v != v {
		return New(ErrCodeConfig, "%s ratio must be within [0, 1], got %v", name, v)
	}
	return nil
}

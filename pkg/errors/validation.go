package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxLabelLength bounds variable labels so rendered estimands stay readable.
const maxLabelLength = 64

// labelRegex matches identifiers usable inside P(...) terms and DOT node IDs.
var labelRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.'-]*$`)

// ValidateLabel validates a single variable label.
//
// Labels appear verbatim in rendered estimands, so characters that carry
// meaning in the text or LaTeX output are rejected:
//   - No empty labels
//   - No control characters or whitespace
//   - No '|', ',', '(' or ')' (term delimiters)
//   - Maximum length of 64 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}

	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}

	for _, r := range label {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "label %q contains whitespace or control characters", label)
		}
	}

	if strings.ContainsAny(label, "|,()") {
		return New(ErrCodeInvalidInput, "label %q contains a term delimiter", label)
	}

	if !labelRegex.MatchString(label) {
		return New(ErrCodeInvalidInput, "invalid label: %q", label)
	}

	return nil
}

// ValidateLabels validates every label and rejects duplicates.
// An empty slice is valid; callers fall back to generated labels.
func ValidateLabels(labels []string) error {
	seen := make(map[string]int, len(labels))
	for i, l := range labels {
		if err := ValidateLabel(l); err != nil {
			return err
		}
		if j, ok := seen[l]; ok {
			return New(ErrCodeInvalidInput, "duplicate label %q at positions %d and %d", l, j, i)
		}
		seen[l] = i
	}
	return nil
}

// ValidatePath validates a model file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

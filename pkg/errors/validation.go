package errors

import (
	"strings"
	"unicode"
)

// maxIDLength bounds element identifiers.
const maxIDLength = 256

// ValidateID validates an element identifier (node, edge, chain, path, set
// or link id) for use in TSG text.
//
// The validation rules follow the record grammar:
//   - No empty ids
//   - No whitespace (fields are whitespace-delimited)
//   - No control characters or null bytes
//   - Maximum length of 256 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}

	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "id too long (max %d characters)", maxIDLength).For(id[:32] + "...")
	}

	for _, r := range id {
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "id contains whitespace").For(id)
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "id contains invalid control characters").For(id)
		}
	}

	return nil
}

// ValidateGraphID validates a graph identifier. In addition to the
// [ValidateID] rules, graph ids must not contain ':' because links address
// nodes as "graph:node".
func ValidateGraphID(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if strings.Contains(id, ":") {
		return New(ErrCodeInvalidID, "graph id cannot contain ':'").For(id)
	}
	return nil
}

// ValidateStepID validates an id that appears inside a chain or path. Such
// ids must not end in '+' or '-', which would be read as an orientation.
func ValidateStepID(id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	if strings.HasSuffix(id, "+") || strings.HasSuffix(id, "-") {
		return New(ErrCodeInvalidID, "id cannot end with an orientation marker").For(id)
	}
	return nil
}

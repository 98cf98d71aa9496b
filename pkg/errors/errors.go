// Package errors provides structured error types for TSG parsing, validation
// and conversion.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the parser, validator and converters
//   - Machine-readable error codes for programmatic handling
//   - Source context (line number, raw text) and element context (ids)
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - MALFORMED_*, INVALID_*, UNKNOWN_*: Input shape failures
//   - DUPLICATE_*: Identifier uniqueness violations
//   - UNRESOLVED_*: Dangling references
//   - *_ORIENTATION, INVALID_CHAIN_WALK: Walk shape violations
//   - UNCONVERTIBLE_*: Conversion-time failures
//
// # Usage
//
//	err := errors.New(errors.ErrCodeDuplicateNodeID, "node %q already declared", id).At(12, raw)
//	if errors.Is(err, errors.ErrCodeDuplicateNodeID) {
//	    // Handle duplicate
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidAttributeValue, origErr, "attribute %q", key)
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Record shape errors
	ErrCodeMalformedLine         Code = "MALFORMED_LINE"
	ErrCodeUnknownTag            Code = "UNKNOWN_TAG"
	ErrCodeInvalidAttributeType  Code = "INVALID_ATTRIBUTE_TYPE"
	ErrCodeInvalidAttributeValue Code = "INVALID_ATTRIBUTE_VALUE"
	ErrCodeInvalidInterval       Code = "INVALID_INTERVAL"
	ErrCodeInvalidID             Code = "INVALID_ID"

	// Uniqueness errors
	ErrCodeDuplicateGraphID Code = "DUPLICATE_GRAPH_ID"
	ErrCodeDuplicateNodeID  Code = "DUPLICATE_NODE_ID"
	ErrCodeDuplicateEdgeID  Code = "DUPLICATE_EDGE_ID"
	ErrCodeDuplicateChainID Code = "DUPLICATE_CHAIN_ID"
	ErrCodeDuplicatePathID  Code = "DUPLICATE_PATH_ID"
	ErrCodeDuplicateSetID   Code = "DUPLICATE_SET_ID"
	ErrCodeDuplicateLinkID  Code = "DUPLICATE_LINK_ID"

	// Reference errors
	ErrCodeUnresolvedAttributeTarget Code = "UNRESOLVED_ATTRIBUTE_TARGET"
	ErrCodeUnresolvedLinkEndpoint    Code = "UNRESOLVED_LINK_ENDPOINT"
	ErrCodeUnresolvedEdgeEndpoint    Code = "UNRESOLVED_EDGE_ENDPOINT"
	ErrCodeUnresolvedSetMember       Code = "UNRESOLVED_SET_MEMBER"
	ErrCodeUnresolvedNode            Code = "UNRESOLVED_NODE"

	// Walk errors
	ErrCodeMissingOrientation    Code = "MISSING_ORIENTATION"
	ErrCodeUnexpectedOrientation Code = "UNEXPECTED_ORIENTATION"
	ErrCodeInvalidChainWalk      Code = "INVALID_CHAIN_WALK"
	ErrCodeTooManyWalks          Code = "TOO_MANY_WALKS"

	// Conversion errors
	ErrCodeUnconvertiblePath Code = "UNCONVERTIBLE_PATH"
	ErrCodeUnconvertibleEdge Code = "UNCONVERTIBLE_EDGE"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
//
// Line and Raw locate parse errors in the source text; Element names the
// offending element for validation and conversion errors (e.g. "gene_b:n9").
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Line    int    // 1-based source line, 0 if not from parsing
	Raw     string // Raw source line text
	Element string // Offending element id
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	b.WriteString(string(e.Code))
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Element != "" {
		fmt.Fprintf(&b, " [%s]", e.Element)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// At attaches source location to the error and returns it.
func (e *Error) At(line int, raw string) *Error {
	e.Line = line
	e.Raw = raw
	return e
}

// For attaches the offending element id to the error and returns it.
func (e *Error) For(element string) *Error {
	e.Element = element
	return e
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// List is an ordered collection of errors, as produced by batch validation
// and best-effort conversion.
type List []*Error

// Error joins the messages of all errors, one per line.
func (l List) Error() string {
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Err returns nil for an empty list and the list itself otherwise.
func (l List) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Codes returns the code of every error in order.
func (l List) Codes() []Code {
	codes := make([]Code, len(l))
	for i, e := range l {
		codes[i] = e.Code
	}
	return codes
}

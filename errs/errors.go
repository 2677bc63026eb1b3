// Package errs defines the sentinel errors shared across markercfg packages.
//
// Callers match them with errors.Is; producing code wraps them with
// fmt.Errorf("%w: ...") to attach context without losing the sentinel.
package errs

import "errors"

var (
	// ErrTooLarge indicates an input (file or declared dimensions) exceeding
	// the configured size guard. It is surfaced before any large allocation
	// is attempted.
	ErrTooLarge = errors.New("input exceeds size limit")

	// ErrTokenBudgetExceeded indicates the document required more tokens than
	// the caller-specified budget. The token stream is never silently
	// truncated.
	ErrTokenBudgetExceeded = errors.New("token budget exceeded")

	// ErrSyntax indicates malformed JSON input.
	ErrSyntax = errors.New("invalid character in json input")

	// ErrPartial indicates the input ended inside an unterminated value.
	ErrPartial = errors.New("unexpected end of json input")

	// ErrNotObject indicates the top-level JSON value is not an object.
	ErrNotObject = errors.New("top-level json value is not an object")

	// ErrInvalidDimensions indicates num_angles or num_markers is missing,
	// zero, or non-positive.
	ErrInvalidDimensions = errors.New("missing or non-positive dimensions")

	// ErrShapeMismatch indicates an array length disagreeing with the
	// declared dimensions.
	ErrShapeMismatch = errors.New("array length does not match declared dimensions")

	// ErrUnknownCompression indicates a compression type with no registered
	// codec.
	ErrUnknownCompression = errors.New("unknown compression type")
)

// Package errors defines the shared error taxonomy for the document core.
// Services wrap these sentinels with fmt.Errorf("%w: ...") and the HTTP
// layer switches on them with errors.Is to pick a status code.
package errors

import "errors"

// Sentinel errors. Per-format extraction failures are deliberately absent:
// they are contained inside extraction results, never propagated.
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrStorage      = errors.New("storage failure")
	ErrPersistence  = errors.New("persistence failure")
)

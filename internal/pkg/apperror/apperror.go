// Package apperror defines the typed business errors returned by workflows.
package apperror

import "errors"

type Kind string

const (
	KindNotFound     Kind = "not_found"
	KindPrecondition Kind = "precondition"
	KindValidation   Kind = "validation"
	KindPolicy       Kind = "policy"
	KindInternal     Kind = "internal"
)

// CodeInternal is reported for every failure that is not a business rule violation.
const CodeInternal = "INTERNAL_ERROR"

// Error is a business rule violation with a machine readable code.
// Sentinel values are compared by identity with errors.Is.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	return e.Message
}

// As extracts the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the business code of err, or CodeInternal.
func CodeOf(err error) string {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return CodeInternal
}

// Package domainerrors carries transport-agnostic failure codes from stores
// and services up to the HTTP layer, which maps each code to a status.
package domainerrors

import "errors"

// Code names what went wrong in business terms.
type Code string

const (
	CodeNotFound           Code = "not_found"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeValidation         Code = "validation_failed"
	CodeInternal           Code = "internal_error"
	CodeConflict           Code = "conflict"
	CodeUnauthorized       Code = "unauthorized"
	CodeForbidden          Code = "forbidden"
	CodeTimeout            Code = "timeout"
	CodeInvariantViolation Code = "invariant_violation"

	// Verification and AI flow codes. None of these carry a score.
	CodeLookupUnavailable    Code = "lookup_unavailable"  // registry unreachable, timed out or refused
	CodeAssessmentFailed     Code = "assessment_failed"   // document assessment could not be produced
	CodeVerificationRejected Code = "verification_failed" // score below the acceptance threshold
	CodeUpstreamModel        Code = "upstream_model_error"
)

// Error is a coded failure. Message is safe to show to clients; Err is not.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code, so errors.Is(err, &Error{Code: c}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.Code == t.Code
}

func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a message to err. A code already on the chain wins over code,
// so a not_found from a store stays not_found through the service.
func Wrap(err error, code Code, msg string) error {
	if existing := CodeOf(err); existing != "" {
		code = existing
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// WithCode is Wrap without preservation: the result always carries code.
func WithCode(err error, code Code, msg string) error {
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the outermost code on err's chain, or "" when there is none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an Error into one of the failure categories the tool
// can surface to its caller.
type Kind int

const (
	KindInvalidReference Kind = iota + 1
	KindTranscriptUnavailable
	KindMissingCredential
	KindUnknownProvider
	KindBackendFailure
)

type Error struct {
	Kind    Kind
	Message string
	Op      string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func InvalidReference(op string, err error, message string) *Error {
	return &Error{
		Kind:    KindInvalidReference,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func TranscriptUnavailable(op string, err error, message string) *Error {
	return &Error{
		Kind:    KindTranscriptUnavailable,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func MissingCredential(op string, err error, message string) *Error {
	return &Error{
		Kind:    KindMissingCredential,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func UnknownProvider(op string, name string) *Error {
	return &Error{
		Kind:    KindUnknownProvider,
		Message: fmt.Sprintf("unknown provider: %s", name),
		Op:      op,
	}
}

func BackendFailure(op string, err error, message string) *Error {
	return &Error{
		Kind:    KindBackendFailure,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func IsInvalidReference(err error) bool      { return is(err, KindInvalidReference) }
func IsTranscriptUnavailable(err error) bool { return is(err, KindTranscriptUnavailable) }
func IsMissingCredential(err error) bool     { return is(err, KindMissingCredential) }
func IsUnknownProvider(err error) bool       { return is(err, KindUnknownProvider) }
func IsBackendFailure(err error) bool        { return is(err, KindBackendFailure) }

package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for transport mapping and retry policy.
type Kind int

const (
	KindValidation Kind = iota
	KindConflict
	KindNotFound
	KindOrphan
	KindStorage
)

// Stable machine-readable codes surfaced to the admin UI.
const (
	CodeInvalidInput       = "INVALID_INPUT"
	CodeMissingReason      = "MISSING_REASON"
	CodeAlreadyReviewed    = "ALREADY_REVIEWED"
	CodeChallengeEnded     = "CHALLENGE_ENDED"
	CodeNotFound           = "NOT_FOUND"
	CodeOrphanRecord       = "ORPHAN_RECORD"
	CodeStorageUnavailable = "STORAGE_UNAVAILABLE"
)

type AppError struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

func New(kind Kind, code, message string, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, Err: err}
}

func Validation(code, message string) *AppError {
	return New(KindValidation, code, message, nil)
}

func Conflict(code, message string) *AppError {
	return New(KindConflict, code, message, nil)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, CodeNotFound, message, nil)
}

func Orphan(message string) *AppError {
	return New(KindOrphan, CodeOrphanRecord, message, nil)
}

func Storage(message string, err error) *AppError {
	return New(KindStorage, CodeStorageUnavailable, message, err)
}

// IsKind reports whether err is an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind == kind
	}
	return false
}

// CodeOf returns the stable code of err, or "" for non-application errors.
func CodeOf(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return ""
}

// Retryable reports whether the error may be retried at the transport layer.
// Business-rule failures are terminal; only storage faults qualify.
func Retryable(err error) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind == KindStorage
	}
	// Unclassified errors are assumed to be infrastructure faults.
	return err != nil
}

package engine

import (
	"errors"
	"fmt"
)

// Error represents an error detected while starting or driving a run.
//
// Startup errors (configuration, identity) abort the run before any item
// is processed. Item and derived-record errors are contained: they are
// written to the item's report and never returned from Run.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Item is the editor id of the affected item, if any.
	Item string

	// Err is the underlying cause.
	Err error
}

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeConfig indicates a malformed or missing rule, localization or
	// settings input.
	ErrCodeConfig ErrorCode = "CONFIG_ERROR"

	// ErrCodeIdentity indicates a required constant missing from the
	// record store.
	ErrCodeIdentity ErrorCode = "IDENTITY_UNRESOLVED"

	// ErrCodeItem indicates an item whose processing failed.
	ErrCodeItem ErrorCode = "ITEM_FAILED"

	// ErrCodeDerivedRecord indicates a derived-record step that was aborted.
	ErrCodeDerivedRecord ErrorCode = "DERIVED_RECORD_FAILED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Item != "" {
		msg += fmt.Sprintf(" (item=%s)", e.Item)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configError(message string, err error) *Error {
	return &Error{Code: ErrCodeConfig, Message: message, Err: err}
}

// IsConfigError returns true if the error is a configuration error.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool {
	return hasCode(err, ErrCodeConfig)
}

// IsIdentityError returns true if a required constant did not resolve.
func IsIdentityError(err error) bool {
	return hasCode(err, ErrCodeIdentity)
}

// IsItemError returns true if the error is a contained per-item failure.
func IsItemError(err error) bool {
	return hasCode(err, ErrCodeItem) || hasCode(err, ErrCodeDerivedRecord)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

package cove

import (
	"errors"
	"fmt"
)

// Kind classifies a retrieval failure.
type Kind string

const (
	// KindTransient covers network errors, per-attempt timeouts, 5xx and
	// unreadable bodies. These are retried.
	KindTransient Kind = "transient"
	// KindClient covers 4xx responses and records that fail validation.
	KindClient Kind = "client"
	// KindExhausted is returned once every attempt failed transiently.
	KindExhausted Kind = "exhausted"
	// KindCanceled means the caller's context ended.
	KindCanceled Kind = "canceled"
)

const (
	CodeFetchFailed        = "FETCH_RESERVATIONS_FAILED"
	CodeInvalidReservation = "INVALID_RESERVATION"
	CodeCanceled           = "FETCH_CANCELED"
)

// APIError is the display-ready failure reported by the client.
type APIError struct {
	Message string
	Status  int
	Code    string
	Kind    Kind
	Err     error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s (status=%d code=%s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("%s (code=%s)", e.Message, e.Code)
}

func (e *APIError) Unwrap() error { return e.Err }

// DisplayMessage returns the text shown to users for err.
func DisplayMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

func IsClientError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == KindClient
}

// statusError is an attempt-level failure carrying the HTTP status.
type statusError struct {
	status int
	text   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.status, e.text)
}

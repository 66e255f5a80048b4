package types

import (
	"errors"
	"fmt"
)

var (
	ErrNoEndpoint       = errors.New("no api endpoint configured")
	ErrNoCredential     = errors.New("no credential available")
	ErrProviderRejected = errors.New("provider reported failure")
)

// StatusError is returned when the quota endpoint answers with a non-2xx code.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("API returned status %d", e.Code)
}

// DecodeError wraps a response body that does not match the provider schema.
type DecodeError struct {
	Provider string
	Err      error
}

func (e DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %s response: %v", e.Provider, e.Err)
}

func (e DecodeError) Unwrap() error {
	return e.Err
}

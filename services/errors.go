package services

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFileType is returned by ExtractTextFromFile for unknown extensions.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrMissingAPIKey is returned by a provider whose credentials were not configured.
	ErrMissingAPIKey = errors.New("api key not configured")
)

// ProviderError is the single failure type crossing the boundary of every
// external provider adapter (generation, search, transcription). Auth,
// transport, status and decode failures are not distinguished by callers.
type ProviderError struct {
	Provider   string
	Op         string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e == nil {
		return "provider error"
	}
	msg := fmt.Sprintf("%s %s failed", e.Provider, e.Op)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newProviderError(provider, op string, status int, err error) *ProviderError {
	return &ProviderError{Provider: provider, Op: op, StatusCode: status, Err: err}
}

// IsProviderError reports whether err came from an external provider.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

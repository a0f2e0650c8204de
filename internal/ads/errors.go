// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ads

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors returned by the ADS client.
var (
	// ErrAuth indicates a missing, invalid or expired API token.
	ErrAuth = errors.New("ADS authentication error")

	// ErrAPI indicates a non-200 response that is not an auth failure.
	ErrAPI = errors.New("ADS API error")

	// ErrInvalidResponse indicates a body that could not be decoded.
	ErrInvalidResponse = errors.New("invalid response from ADS")
)

// APIError carries the status and message of a failed ADS request.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("ADS API returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("ADS API returned HTTP %d: %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrAuth for 401/403 and ErrAPI otherwise.
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrAuth
	}
	return ErrAPI
}

// IsAuthError reports whether err was caused by a token problem.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrAuth)
}

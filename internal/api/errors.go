// Copyright (C) 2025-2026 DevSecOps Dashboard
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the backend, decoded from its error
// envelope where possible.
type APIError struct {
	StatusCode int
	ExcType    string // Backend exception class, e.g. "PermissionError"
	Message    string
}

func (e *APIError) Error() string {
	if e.ExcType != "" {
		return fmt.Sprintf("backend error %d (%s): %s", e.StatusCode, e.ExcType, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
}

// IsAuthError reports whether err indicates a missing or expired session.
// The auth store maps these to the guest state instead of surfacing them.
func IsAuthError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusUnauthorized ||
		(apiErr.StatusCode == http.StatusForbidden && apiErr.ExcType == "CSRFTokenError")
}

// IsPermissionError reports whether err is a backend permission denial.
func IsPermissionError(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusForbidden && apiErr.ExcType != "CSRFTokenError"
}

// IsNotFound reports whether err is a missing-record response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

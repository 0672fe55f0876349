// Package apierror defines the error type used for failures of external
// services (source host and inference backend). Callers dispatch on it with
// errors.As to decide the HTTP response code.
package apierror

import "fmt"

// ServiceError wraps a failure from an upstream API call.
type ServiceError struct {
	Service    string // "github", "gemini", "openai", "copilot"
	StatusCode int    // upstream HTTP status, 0 for transport failures
	Err        error
}

func (e *ServiceError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Service, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Service, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// New builds a ServiceError for the named service.
func New(service string, statusCode int, err error) *ServiceError {
	return &ServiceError{Service: service, StatusCode: statusCode, Err: err}
}

package upstream

import (
	"errors"
	"fmt"
)

// NetworkError means the request never produced an HTTP response
// (DNS failure, refused connection, timeout).
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("upstream unreachable during %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPError means the upstream responded with a non-2xx status.
type HTTPError struct {
	Op      string
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %s failed with status %d: %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %s failed with status %d", e.Op, e.Status)
}

// AppError means the upstream answered 2xx but reported failure in the
// response envelope (success:false or an explicit message).
type AppError struct {
	Op      string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("upstream %s rejected: %s", e.Op, e.Message)
}

// IsNetworkError reports whether err is a transport-level failure.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsHTTPError reports whether err is a non-2xx upstream response.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}

// IsAppError reports whether err is an application-level rejection.
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

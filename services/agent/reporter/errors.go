package reporter

import "fmt"

// StatusError signals that the endpoint answered with a non-2xx HTTP status
type StatusError struct {
	Code int
}

// Error returns the string representation of the error
func (e *StatusError) Error() string {
	return fmt.Sprintf("endpoint rejected report with status code: %d", e.Code)
}

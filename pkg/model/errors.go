package model

import "fmt"

// APIError is an application-level rejection from the remote ledger: the
// server was reached and answered with a non-2xx status. It is terminal for
// the attempt and must never be converted into a queued retry.
type APIError struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

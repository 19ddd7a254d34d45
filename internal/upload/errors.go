package upload

import "fmt"

// RequestError is returned for a response outside the 2xx range.
type RequestError struct {
	StatusCode int
	Body       []byte
}

// Error matches the message HTTP clients conventionally surface for a bad status.
func (e *RequestError) Error() string {
	return fmt.Sprintf("Request failed with status code %d", e.StatusCode)
}

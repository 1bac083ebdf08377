package pxweb

import (
	"fmt"
)

const excerptLength = 200

// StatusError is returned for any non-2xx answer from the api.
type StatusError struct {
	Method string
	URL    string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.URL, e.Status, e.Body)
}

func newStatusError(method, url string, status int, body []byte) *StatusError {
	excerpt := []rune(string(body))
	if len(excerpt) > excerptLength {
		excerpt = append(excerpt[:excerptLength], '…')
	}
	return &StatusError{
		Method: method,
		URL:    url,
		Status: status,
		Body:   string(excerpt),
	}
}

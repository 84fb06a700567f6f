package controller

import (
	"fmt"
	"strings"
)

// ValidationError is returned when the draft is missing required fields. No request is made.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", MessageMissingFields, strings.Join(e.Missing, ", "))
}

// RequestError is returned when the collection endpoint could not serve a request
type RequestError struct {
	Op  string
	Err error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

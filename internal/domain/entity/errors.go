package entity

import (
	"errors"
	"fmt"
)

var (
	ErrTransport = errors.New("transport failure")
	ErrStatus    = errors.New("unexpected http status")
	ErrParse     = errors.New("malformed poll response")
)

// FetchError is the failure signal of one poll request.
type FetchError struct {
	Kind       error
	StatusCode int
	StatusText string
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		if e.Err != nil {
			return fmt.Sprintf("%v: %d %s: %v", e.Kind, e.StatusCode, e.StatusText, e.Err)
		}
		return fmt.Sprintf("%v: %d %s", e.Kind, e.StatusCode, e.StatusText)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *FetchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Diagnostic renders the failure the way the admin console prints it.
func (e *FetchError) Diagnostic() string {
	return fmt.Sprintf("[ERROR][tasks_by_ids]:%d:%s", e.StatusCode, e.StatusText)
}

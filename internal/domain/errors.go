package domain

import "fmt"

// UnknownObjectError reports that the name service returned no coordinates
// for Name.
type UnknownObjectError struct {
	Name string
}

func (e *UnknownObjectError) Error() string {
	return fmt.Sprintf("Unknown object '%s'", e.Name)
}

// TransportError covers connection failures and non-2xx responses.
// StatusCode is zero when no response was received.
type TransportError struct {
	Op         string
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError means the response body was received but could not be
// interpreted (bad UTF-8, bad JSON, or missing/invalid fields).
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode resolution for %q: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

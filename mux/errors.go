package mux

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrInvalidHandlerKind is returned when a handler or middleware value is
// neither a supported function shape nor a (type, method) pair.
var ErrInvalidHandlerKind = errors.New("mux: handler must be a function or a (type, method) pair")

// ErrUnsupportedMethod is returned when a route is registered for an HTTP
// method outside the supported set.
var ErrUnsupportedMethod = errors.New("mux: unsupported http method")

// ErrNoRoutesRegistered is returned when a request is dispatched against an
// empty route table.
var ErrNoRoutesRegistered = errors.New("mux: no routes registered")

// ErrNotFound is returned when no route match is found. Triggers 404 Not Found
// per RFC 9110 Section 15.5.5.
var ErrNotFound = errors.New("no matching route was found")

// UnsupportedMethodError lists the offending methods of a failed
// registration. It unwraps to ErrUnsupportedMethod.
type UnsupportedMethodError struct {
	Methods []string
}

func (e *UnsupportedMethodError) Error() string {
	quoted := make([]string, len(e.Methods))
	for i, m := range e.Methods {
		quoted[i] = fmt.Sprintf("%q", m)
	}
	return "mux: unsupported http method(s): " + strings.Join(quoted, ", ")
}

func (e *UnsupportedMethodError) Unwrap() error {
	return ErrUnsupportedMethod
}

// HTTPError aborts a dispatch with the given status code. Middleware return
// it to stop the chain; ServeHTTP writes Code and, when set, Message.
type HTTPError struct {
	Code    int
	Message string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("mux: http %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("mux: http %d: %s", e.Code, http.StatusText(e.Code))
}

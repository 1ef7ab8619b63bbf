package mux

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
)

// ServeHTTP dispatches req and writes the handler result. Errors map to
// responses as follows: *HTTPError writes its code, a miss writes
// 404 Not Found with no body (an OPTIONS miss on a known path writes
// 204 No Content with an Allow header), anything else writes
// 500 Internal Server Error.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodHead {
		w = &headResponseWriter{ResponseWriter: w}
	}

	result, err := r.Dispatch(w, req)
	if err != nil {
		r.writeError(w, req, err)
		return
	}
	writeResult(w, result)
}

func (r *Router) writeError(w http.ResponseWriter, req *http.Request, err error) {
	var httpErr *HTTPError
	switch {
	case errors.As(err, &httpErr):
		if httpErr.Message != "" {
			http.Error(w, httpErr.Message, httpErr.Code)
			return
		}
		w.WriteHeader(httpErr.Code)
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNoRoutesRegistered):
		if req.Method == http.MethodOptions {
			if allowed := allowedMethods(r, req.URL.EscapedPath()); len(allowed) > 0 {
				w.Header().Set("Allow", strings.Join(allowed, ", "))
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	default:
		r.log().Error("dispatch failed", "method", req.Method, "path", req.URL.Path, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// writeResult renders a handler result: nil writes nothing, strings and
// byte slices are written verbatim, anything else is encoded as JSON.
func writeResult(w http.ResponseWriter, result any) {
	switch v := result.(type) {
	case nil:
	case string:
		if w.Header().Get("Content-Type") == "" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		}
		io.WriteString(w, v) //nolint:errcheck
	case []byte:
		w.Write(v) //nolint:errcheck
	default:
		ResponseJSON(w, http.StatusOK, v)
	}
}

// ResponseJSON encodes v as JSON and writes it to the response with the given
// status code. The Content-Type header is set to "application/json".
// If encoding fails, an HTTP 500 Internal Server Error is written instead.
func ResponseJSON(w http.ResponseWriter, code int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(buf.Bytes()) //nolint:errcheck
}

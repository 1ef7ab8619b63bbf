package mux

import (
	"context"
	"net/http"
)

// routeContextKey is an unexported type for the single context key.
type routeContextKey struct{}

// ctxKey is the single context key used to store both route and vars.
var ctxKey = routeContextKey{}

// routeContext holds the matched route and extracted variables.
type routeContext struct {
	route *Route
	vars  map[string]string
}

// Vars returns the route variables for the current request, if any.
func Vars(r *http.Request) map[string]string {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.vars
	}
	return nil
}

// VarGet returns the value of a single route variable by name and a boolean
// indicating whether the variable exists.
func VarGet(r *http.Request, name string) (string, bool) {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok && rc.vars != nil {
		val, exists := rc.vars[name]
		return val, exists
	}
	return "", false
}

// CurrentRoute returns the matched route for the current request, if any.
// This only works when called inside the chain of the matched route
// because the matched route is stored in the request context.
func CurrentRoute(r *http.Request) *Route {
	if rc, ok := r.Context().Value(ctxKey).(*routeContext); ok {
		return rc.route
	}
	return nil
}

// SetURLVars sets the URL variables for the given request, returning the
// modified request. This is intended for testing route handlers.
func SetURLVars(r *http.Request, val map[string]string) *http.Request {
	return setRouteContext(r, CurrentRoute(r), val)
}

// setRouteContext stores both the matched route and vars in the request
// context using a single WithContext call.
func setRouteContext(r *http.Request, route *Route, vars map[string]string) *http.Request {
	ctx := context.WithValue(r.Context(), ctxKey, &routeContext{route: route, vars: vars})
	return r.WithContext(ctx)
}

// RouteMatch is the result of a successful FindMatch. It is owned by the
// caller; the matched Route itself is never modified by matching.
type RouteMatch struct {
	// Route is the matched route.
	Route *Route

	// Params holds the named captures of the route pattern.
	Params map[string]string

	// Head is set when a HEAD request was matched against GET routes.
	// The response body must be discarded.
	Head bool
}

// Context is passed to every handler and middleware of a dispatch.
// Middleware may replace Request (for example to attach context values);
// later entries of the chain see the replacement.
type Context struct {
	Request  *http.Request
	Response http.ResponseWriter

	// Args are the extra arguments configured with
	// Router.SetHandlerArguments.
	Args []any

	route  *Route
	params map[string]string
}

// Route returns the matched route, or nil inside a not-found handler.
func (c *Context) Route() *Route {
	return c.route
}

// Params returns the parameters extracted from the request path.
func (c *Context) Params() map[string]string {
	return c.params
}

// Param returns a single path parameter, or "" when absent.
func (c *Context) Param(name string) string {
	return c.params[name]
}

// headResponseWriter passes status and headers through and drops the body,
// per RFC 9110 Section 9.3.2.
type headResponseWriter struct {
	http.ResponseWriter
}

func (w *headResponseWriter) Write(b []byte) (int, error) {
	return len(b), nil
}

// Unwrap returns the underlying ResponseWriter for middleware compatibility.
func (w *headResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// WalkFunc is the type of the function called for each route visited by
// Walk, in registration order.
type WalkFunc func(route *Route) error

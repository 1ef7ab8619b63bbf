package mux

import (
	"errors"
	"net/http"
)

// Dispatch matches req and runs the chain of the matched route: before
// middleware (group entries first, then route entries), the handler, then
// after middleware. It returns the handler result.
//
// With no match it returns the result of the not-found handler when one is
// set and ErrNotFound otherwise. An empty table yields
// ErrNoRoutesRegistered. The first error returned by a chain entry stops
// the dispatch and is returned as-is.
func (r *Router) Dispatch(w http.ResponseWriter, req *http.Request) (any, error) {
	match, err := r.FindMatch(req.Method, req.URL.EscapedPath())
	if match.Head {
		if _, ok := w.(*headResponseWriter); !ok {
			w = &headResponseWriter{ResponseWriter: w}
		}
	}

	switch {
	case errors.Is(err, ErrNoRoutesRegistered):
		return nil, err
	case err != nil:
		if r.notFound == nil {
			r.log().Debug("no route matched", "method", req.Method, "path", req.URL.Path)
			return nil, err
		}
		c := &Context{Request: req, Response: w, Args: r.args}
		return r.invoke(*r.notFound, r.handlersNamespace, c)
	}

	req = setRouteContext(req, match.Route, match.Params)
	c := &Context{
		Request:  req,
		Response: w,
		Args:     r.args,
		route:    match.Route,
		params:   match.Params,
	}

	r.log().Debug("route matched", "method", req.Method, "path", req.URL.Path, "route", match.Route.template)
	return r.runChain(match.Route, c)
}

// runChain invokes the middleware and handler of route. Middleware values
// are validated only when reached.
func (r *Router) runChain(route *Route, c *Context) (any, error) {
	for _, mw := range route.before {
		if _, err := r.invoke(mw, r.middlewaresNamespace, c); err != nil {
			return nil, err
		}
	}

	result, err := r.invoke(route.handler, route.handlerNS, c)
	if err != nil {
		return result, err
	}

	for _, mw := range route.after {
		if _, err := r.invoke(mw, r.middlewaresNamespace, c); err != nil {
			return result, err
		}
	}
	return result, nil
}

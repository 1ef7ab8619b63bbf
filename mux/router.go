package mux

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"slices"
	"strings"
)

// Router registers routes to be matched and dispatches their handler chain.
//
// It implements the http.Handler interface, so it can be registered to serve
// requests:
//
//	r := mux.NewRouter()
//	r.Get("/users/{id}", showUser).Where(map[string]string{"id": "int"})
//	http.ListenAndServe(":8080", r)
//
// Registration is not safe for concurrent use. Once registration is done the
// route table is read-only and Dispatch may be called from many goroutines.
type Router struct {
	routes []*Route
	groups []*RouteGroup
	errs   []error

	basePath             string
	handlersNamespace    string
	middlewaresNamespace string
	types                map[string]reflect.Type

	notFound *Handler
	args     []any
	logger   *slog.Logger
}

// NewRouter returns a new router instance.
func NewRouter() *Router {
	return &Router{
		types:  make(map[string]reflect.Type),
		logger: defaultLogger(),
	}
}

// SetBasePath sets a path prepended to every route registered afterwards.
func (r *Router) SetBasePath(path string) *Router {
	r.basePath = path
	return r
}

// SetHandlersNamespace sets the prefix used to look up handler method
// references registered afterwards.
func (r *Router) SetHandlersNamespace(namespace string) *Router {
	r.handlersNamespace = namespace
	return r
}

// SetMiddlewaresNamespace sets the prefix used to look up middleware method
// references.
func (r *Router) SetMiddlewaresNamespace(namespace string) *Router {
	r.middlewaresNamespace = namespace
	return r
}

// SetHandlerArguments sets extra arguments exposed to every handler and
// middleware through Context.Args.
func (r *Router) SetHandlerArguments(args ...any) *Router {
	r.args = args
	return r
}

// SetLogger sets the logger used for registration and dispatch events. A
// nil logger restores the default one.
func (r *Router) SetLogger(logger *slog.Logger) *Router {
	if logger == nil {
		logger = defaultLogger()
	}
	r.logger = logger
	return r
}

// SetNotFoundHandler sets the handler invoked when no route matches. Its
// result replaces the ErrNotFound of Dispatch.
func (r *Router) SetNotFoundHandler(handler any) error {
	h, err := NewHandler(handler)
	if err != nil {
		return err
	}
	if _, err := r.resolve(h, r.handlersNamespace); err != nil {
		return err
	}
	r.notFound = &h
	return nil
}

// RegisterType makes the type of sample resolvable by name in method
// references. Pointer samples register their element type.
func (r *Router) RegisterType(name string, sample any) *Router {
	t := reflect.TypeOf(sample)
	if t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t != nil {
		r.types[name] = t
	}
	return r
}

func (r *Router) log() *slog.Logger {
	return r.logger
}

func defaultLogger() *slog.Logger {
	return slog.Default().WithGroup("mux.Router")
}

// --- Registration ---

// AddRoute registers a route for methods and path. Methods are uppercased
// and must belong to SupportedMethods. The path is prefixed with the base
// path and the active group prefix, then normalized.
//
// On failure the route is not added to the table; the returned route
// carries the error so chained calls are no-ops.
func (r *Router) AddRoute(methods []string, path string, handler any) (*Route, error) {
	route, err := r.buildRoute(methods, path, handler)
	if err != nil {
		r.errs = append(r.errs, err)
		r.log().Warn("route registration failed", "methods", methods, "path", path, "error", err)
		return route, err
	}

	route.registered = true
	r.routes = append(r.routes, route)
	r.log().Debug("route registered", "methods", route.methods, "path", route.template)
	return route, nil
}

func (r *Router) buildRoute(methods []string, path string, handler any) (*Route, error) {
	group := r.activeGroup()
	route := newRoute(r, group)

	valid, rejected := normalizeMethods(methods)
	if len(rejected) > 0 {
		route.err = &UnsupportedMethodError{Methods: rejected}
		return route, route.err
	}
	if len(valid) == 0 {
		route.err = fmt.Errorf("%w: no method given", ErrUnsupportedMethod)
		return route, route.err
	}

	if group != nil {
		path = group.pathPrefix + "/" + path
	}
	if r.basePath != "" {
		path = "/" + r.basePath + "/" + path
	}

	if err := route.setPath(NormalizePath(path)); err != nil {
		route.err = err
		return route, err
	}
	route.methods = valid

	route.Handler(handler)
	return route, route.err
}

func (r *Router) register(method, path string, handler any) *Route {
	route, _ := r.AddRoute([]string{method}, path, handler)
	return route
}

// Get registers a GET route. HEAD requests are served by GET routes.
func (r *Router) Get(path string, handler any) *Route {
	return r.register(http.MethodGet, path, handler)
}

// Post registers a POST route.
func (r *Router) Post(path string, handler any) *Route {
	return r.register(http.MethodPost, path, handler)
}

// Put registers a PUT route.
func (r *Router) Put(path string, handler any) *Route {
	return r.register(http.MethodPut, path, handler)
}

// Patch registers a PATCH route.
func (r *Router) Patch(path string, handler any) *Route {
	return r.register(http.MethodPatch, path, handler)
}

// Delete registers a DELETE route.
func (r *Router) Delete(path string, handler any) *Route {
	return r.register(http.MethodDelete, path, handler)
}

// Options registers an OPTIONS route.
func (r *Router) Options(path string, handler any) *Route {
	return r.register(http.MethodOptions, path, handler)
}

// Any registers a route for every supported method.
func (r *Router) Any(path string, handler any) *Route {
	route, _ := r.AddRoute(supportedMethods, path, handler)
	return route
}

// Group runs fn with a new group as the active one. The group starts as a
// copy of the enclosing group; fn customizes it and registers routes. The
// enclosing group is restored when fn returns or panics.
func (r *Router) Group(fn func(g *RouteGroup)) {
	g := newRouteGroup(r.activeGroup())
	r.groups = append(r.groups, g)
	defer func() {
		r.groups = r.groups[:len(r.groups)-1]
	}()
	fn(g)
}

func (r *Router) activeGroup() *RouteGroup {
	if len(r.groups) == 0 {
		return nil
	}
	return r.groups[len(r.groups)-1]
}

// Err returns the joined registration errors, including errors set on
// routes after they were added to the table.
func (r *Router) Err() error {
	errs := slices.Clone(r.errs)
	for _, route := range r.routes {
		if route.err != nil {
			errs = append(errs, route.err)
		}
	}
	return errors.Join(errs...)
}

// --- Lookup ---

// FindMatch returns the first route, in registration order, whose method
// set contains method and whose pattern matches the normalized path. HEAD
// is matched as GET with RouteMatch.Head set.
//
// It returns ErrNoRoutesRegistered on an empty table and ErrNotFound when
// no route matches.
func (r *Router) FindMatch(method, path string) (RouteMatch, error) {
	if len(r.routes) == 0 {
		return RouteMatch{}, ErrNoRoutesRegistered
	}

	method = strings.ToUpper(method)
	head := method == http.MethodHead
	if head {
		method = http.MethodGet
	}
	path = NormalizePath(path)

	for _, route := range r.routes {
		if params, ok := route.Match(method, path); ok {
			return RouteMatch{Route: route, Params: params, Head: head}, nil
		}
	}
	return RouteMatch{Head: head}, ErrNotFound
}

// GetRoute returns the first route registered with the given name.
func (r *Router) GetRoute(name string) *Route {
	for _, route := range r.routes {
		if route.GetName() == name {
			return route
		}
	}
	return nil
}

// URL builds the path of the named route with params substituted. It
// returns ErrNotFound when no route has that name.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	route := r.GetRoute(name)
	if route == nil {
		return "", fmt.Errorf("%w: no route named %q", ErrNotFound, name)
	}
	return route.URL(params)
}

// Routes returns the registered routes in match order.
func (r *Router) Routes() []*Route {
	return slices.Clone(r.routes)
}

// Walk calls walkFn for every registered route in match order, stopping at
// the first error.
func (r *Router) Walk(walkFn WalkFunc) error {
	for _, route := range r.routes {
		if err := walkFn(route); err != nil {
			return err
		}
	}
	return nil
}

package manifest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/vitalvas/waypoint/mux"
)

// ResolveFunc maps a handler or middleware name from the manifest to a
// value accepted by mux.NewHandler.
type ResolveFunc func(name string) (any, error)

// MethodRefResolver resolves "Type.Method" names into mux.MethodRef values
// looked up through the router's type registry.
func MethodRefResolver(name string) (any, error) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return nil, fmt.Errorf("%w: %q is not a Type.Method reference", mux.ErrInvalidHandlerKind, name)
	}
	return mux.MethodRef{Type: name[:i], Method: name[i+1:]}, nil
}

// Apply registers every route of the manifest on r. Groups map to
// Router.Group; routes without methods default to GET. A nil resolve uses
// MethodRefResolver.
//
// Apply keeps registering after a failed route and returns the joined
// errors of all failures.
func (m *Manifest) Apply(r *mux.Router, resolve ResolveFunc) error {
	if resolve == nil {
		resolve = MethodRefResolver
	}

	if m.BasePath != "" {
		r.SetBasePath(m.BasePath)
	}
	if m.HandlersNamespace != "" {
		r.SetHandlersNamespace(m.HandlersNamespace)
	}

	a := &applier{router: r, resolve: resolve}
	a.routes(m.Routes)
	a.groups(m.Groups)

	return errors.Join(a.errs...)
}

type applier struct {
	router  *mux.Router
	resolve ResolveFunc
	errs    []error
}

func (a *applier) groups(groups []Group) {
	for _, g := range groups {
		a.router.Group(func(rg *mux.RouteGroup) {
			if g.Prefix != "" {
				rg.PathPrefix(g.Prefix)
			}
			rg.NamePrefix(g.Name)
			rg.Before(a.resolveAll(g.Before)...)
			rg.After(a.resolveAll(g.After)...)

			a.routes(g.Routes)
			a.groups(g.Groups)
		})
	}
}

func (a *applier) routes(routes []Route) {
	for _, rt := range routes {
		handler, err := a.resolve(rt.Handler)
		if err != nil {
			a.errs = append(a.errs, fmt.Errorf("route %q: %w", rt.Path, err))
			continue
		}

		methods := rt.Methods
		if len(methods) == 0 {
			methods = []string{http.MethodGet}
		}

		route, err := a.router.AddRoute(methods, rt.Path, handler)
		if err != nil {
			a.errs = append(a.errs, fmt.Errorf("route %q: %w", rt.Path, err))
			continue
		}

		route.Where(rt.Where).
			Name(rt.Name).
			Before(a.resolveAll(rt.Before)...).
			After(a.resolveAll(rt.After)...)

		if err := route.GetError(); err != nil {
			a.errs = append(a.errs, fmt.Errorf("route %q: %w", rt.Path, err))
		}
	}
}

// resolveAll resolves middleware names, recording failures and dropping
// the entries that could not be resolved.
func (a *applier) resolveAll(names []string) []any {
	out := make([]any, 0, len(names))
	for _, name := range names {
		v, err := a.resolve(name)
		if err != nil {
			a.errs = append(a.errs, fmt.Errorf("middleware %q: %w", name, err))
			continue
		}
		out = append(out, v)
	}
	return out
}

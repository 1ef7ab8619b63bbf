package mux

import (
	"errors"
	"net/http"
)

// Mapper registers several methods on one path:
//
//	r.Map("/articles/{id}").
//		Get(showArticle).
//		Put(updateArticle).
//		Attributes(func(rt *mux.Route) { rt.Where(map[string]string{"id": "int"}) })
type Mapper struct {
	router *Router
	path   string
	errs   []error
	// last is the route of the latest registration, nil when it failed.
	last *Route
}

// Map returns a Mapper bound to path.
func (r *Router) Map(path string) *Mapper {
	return &Mapper{router: r, path: path}
}

func (m *Mapper) add(method string, handler any) *Mapper {
	route, err := m.router.AddRoute([]string{method}, m.path, handler)
	if err != nil {
		m.errs = append(m.errs, err)
		m.last = nil
		return m
	}
	m.last = route
	return m
}

// Get registers a GET route on the mapped path.
func (m *Mapper) Get(handler any) *Mapper {
	return m.add(http.MethodGet, handler)
}

// Post registers a POST route on the mapped path.
func (m *Mapper) Post(handler any) *Mapper {
	return m.add(http.MethodPost, handler)
}

// Put registers a PUT route on the mapped path.
func (m *Mapper) Put(handler any) *Mapper {
	return m.add(http.MethodPut, handler)
}

// Patch registers a PATCH route on the mapped path.
func (m *Mapper) Patch(handler any) *Mapper {
	return m.add(http.MethodPatch, handler)
}

// Delete registers a DELETE route on the mapped path.
func (m *Mapper) Delete(handler any) *Mapper {
	return m.add(http.MethodDelete, handler)
}

// Options registers an OPTIONS route on the mapped path.
func (m *Mapper) Options(handler any) *Mapper {
	return m.add(http.MethodOptions, handler)
}

// Attributes calls fn with the route of the mapper's latest registration.
// It does nothing when that registration failed.
func (m *Mapper) Attributes(fn func(route *Route)) *Mapper {
	if m.last != nil {
		fn(m.last)
	}
	return m
}

// Err returns the joined registration errors of the mapper.
func (m *Mapper) Err() error {
	return errors.Join(m.errs...)
}

package mux

import "slices"

// RouteGroup carries the name prefix, path prefix and middleware inherited
// by routes registered inside Router.Group. A nested group starts as a copy
// of its parent; every setter extends the inherited state.
type RouteGroup struct {
	namePrefix string
	pathPrefix string
	before     []any
	after      []any
}

// newRouteGroup returns a group seeded from parent, or an empty group when
// parent is nil.
func newRouteGroup(parent *RouteGroup) *RouteGroup {
	g := &RouteGroup{}
	if parent != nil {
		g.namePrefix = parent.namePrefix
		g.pathPrefix = parent.pathPrefix
		g.before = slices.Clone(parent.before)
		g.after = slices.Clone(parent.after)
	}
	return g
}

// PathPrefix appends prefix to the group's path prefix. The value is always
// wrapped in separators; duplicates are removed when routes normalize
// their path.
func (g *RouteGroup) PathPrefix(prefix string) *RouteGroup {
	g.pathPrefix += "/" + prefix + "/"
	return g
}

// NamePrefix appends prefix to the group's name prefix.
func (g *RouteGroup) NamePrefix(prefix string) *RouteGroup {
	g.namePrefix += prefix
	return g
}

// Middlewares appends before and after middleware.
func (g *RouteGroup) Middlewares(before, after []any) *RouteGroup {
	g.before = append(g.before, before...)
	g.after = append(g.after, after...)
	return g
}

// Before appends middleware run ahead of the handler.
func (g *RouteGroup) Before(mw ...any) *RouteGroup {
	g.before = append(g.before, mw...)
	return g
}

// After appends middleware run after the handler.
func (g *RouteGroup) After(mw ...any) *RouteGroup {
	g.after = append(g.after, mw...)
	return g
}

// GetPathPrefix returns the accumulated, unnormalized path prefix.
func (g *RouteGroup) GetPathPrefix() string {
	return g.pathPrefix
}

// GetNamePrefix returns the accumulated name prefix.
func (g *RouteGroup) GetNamePrefix() string {
	return g.namePrefix
}

// GetMiddlewares returns copies of the before and after middleware lists.
func (g *RouteGroup) GetMiddlewares() (before, after []any) {
	return slices.Clone(g.before), slices.Clone(g.after)
}

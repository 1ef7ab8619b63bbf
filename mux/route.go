package mux

import (
	"fmt"
	"maps"
	"net/url"
	"regexp"
	"slices"
	"strings"
)

// Route is a registered endpoint: a method set, a compiled path pattern, a
// handler and its middleware. A Route is only written during registration;
// matching never mutates it, so a fully built table can be shared across
// goroutines.
type Route struct {
	router *Router

	namePrefix string
	name       string

	// template is the normalized path with {name} / {name?} placeholders.
	template string
	// pattern is template with constrained placeholders already rewritten
	// into capture groups.
	pattern string
	vars    []placeholder

	constraints map[string]string
	matchers    map[string]varMatcher
	regexp      *regexp.Regexp

	methods   []string
	handler   Handler
	handlerNS string
	before    []any
	after     []any

	err error
	// registered is set once the route is in the router's table; earlier
	// errors are reported by AddRoute.
	registered bool
}

// newRoute returns a route seeded with the name prefix and middleware of
// group, when group is not nil.
func newRoute(router *Router, group *RouteGroup) *Route {
	r := &Route{router: router}
	if group != nil {
		r.namePrefix = group.namePrefix
		r.before = slices.Clone(group.before)
		r.after = slices.Clone(group.after)
	}
	return r
}

// setPath parses the normalized path template and compiles its pattern.
func (r *Route) setPath(path string) error {
	tpl, vars, inline, err := parseTemplate(path)
	if err != nil {
		return err
	}
	r.template = tpl
	r.pattern = tpl
	r.vars = vars
	r.constraints = make(map[string]string, len(vars))
	r.matchers = make(map[string]varMatcher, len(vars))
	return r.applyConstraints(inline)
}

// applyConstraints rewrites the placeholders named in constraints that are
// not yet constrained, then recompiles the route pattern.
func (r *Route) applyConstraints(constraints map[string]string) error {
	fresh := make(map[string]string, len(constraints))
	for name, c := range constraints {
		if !r.hasVar(name) {
			continue
		}
		if _, done := r.constraints[name]; done {
			continue
		}
		m, err := constraintMatcher(c)
		if err != nil {
			return err
		}
		r.constraints[name] = c
		r.matchers[name] = m
		fresh[name] = c
	}
	r.pattern = ApplyConstraints(r.pattern, fresh)
	return r.compile()
}

// compile builds the anchored matching regexp. Placeholders still without a
// constraint match a single path segment.
func (r *Route) compile() error {
	defaults := make(map[string]string)
	for _, v := range r.vars {
		if _, ok := r.constraints[v.name]; !ok {
			defaults[v.name] = defaultPattern
		}
	}

	re, err := compileRegexp("^(?:" + ApplyConstraints(r.pattern, defaults) + ")$")
	if err != nil {
		return fmt.Errorf("mux: invalid route pattern %q: %w", r.pattern, err)
	}
	r.regexp = re
	return nil
}

func (r *Route) hasVar(name string) bool {
	for _, v := range r.vars {
		if v.name == name {
			return true
		}
	}
	return false
}

// setErr records the first error of the route.
func (r *Route) setErr(err error) {
	if err == nil || r.err != nil {
		return
	}
	r.err = err
	if r.registered && r.router != nil {
		r.router.log().Warn("route configuration failed", "path", r.template, "error", err)
	}
}

// Match matches method and an already normalized, escaped path against the
// route. On success it returns the unescaped named captures of the pattern;
// optional placeholders that did not participate in the match are omitted.
func (r *Route) Match(method, path string) (map[string]string, bool) {
	if r.err != nil || r.regexp == nil {
		return nil, false
	}
	if !matchInArray(r.methods, method) {
		return nil, false
	}

	idx := r.regexp.FindStringSubmatchIndex(path)
	if idx == nil {
		return nil, false
	}

	params := make(map[string]string, len(r.vars))
	for i, name := range r.regexp.SubexpNames() {
		if name == "" || idx[2*i] < 0 {
			continue
		}
		params[name] = unescapeParam(strings.Trim(path[idx[2*i]:idx[2*i+1]], "/"))
	}
	return params, true
}

// unescapeParam decodes a captured value, keeping malformed escapes as-is.
func unescapeParam(s string) string {
	if v, err := url.PathUnescape(s); err == nil {
		return v
	}
	return s
}

// Where constrains placeholders of the route. Each constraint is a macro
// name or a raw regexp body. Placeholders already constrained keep their
// first constraint.
func (r *Route) Where(constraints map[string]string) *Route {
	if r.err == nil {
		r.setErr(r.applyConstraints(constraints))
	}
	return r
}

// Handler sets the route handler. Invalid values and method references that
// cannot be resolved mark the route with ErrInvalidHandlerKind.
func (r *Route) Handler(handler any) *Route {
	if r.err != nil {
		return r
	}
	h, err := NewHandler(handler)
	if err != nil {
		r.setErr(err)
		return r
	}
	ns := ""
	if r.router != nil {
		ns = r.router.handlersNamespace
		if _, err := r.router.resolve(h, ns); err != nil {
			r.setErr(err)
			return r
		}
	}
	r.handler = h
	r.handlerNS = ns
	return r
}

// Name sets the route name used for reverse lookups. The name is appended
// to the name prefix inherited from the enclosing groups.
func (r *Route) Name(name string) *Route {
	r.name = name
	return r
}

// Before appends middleware run ahead of the handler, after the inherited
// group middleware.
func (r *Route) Before(mw ...any) *Route {
	r.before = append(r.before, mw...)
	return r
}

// After appends middleware run after the handler.
func (r *Route) After(mw ...any) *Route {
	r.after = append(r.after, mw...)
	return r
}

// URL builds the path of the route, substituting escaped params into the
// placeholders. Every value must satisfy its placeholder constraint before
// escaping. Optional placeholders without a value are dropped together with
// their leading separator.
func (r *Route) URL(params map[string]string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	if len(r.vars) == 0 {
		return r.template, nil
	}

	pairs := make([]string, 0, len(r.vars)*4)
	for _, v := range r.vars {
		val, ok := params[v.name]
		if !ok || val == "" {
			if !v.optional {
				return "", fmt.Errorf("mux: missing route variable %q", v.name)
			}
			pairs = append(pairs, "/"+v.token(), "", v.token(), "")
			continue
		}

		m := r.matchers[v.name]
		if m == nil {
			m, _ = constraintMatcher(defaultPattern)
		}
		if !m.MatchString(val) {
			return "", fmt.Errorf("mux: variable %q doesn't match, expected %q", v.name, m.String())
		}
		pairs = append(pairs, v.token(), url.PathEscape(val))
	}

	u := strings.NewReplacer(pairs...).Replace(r.template)
	if u == "" {
		return "/", nil
	}
	return u, nil
}

// --- Inspection ---

// GetName returns the full route name, or "" when the route is unnamed.
func (r *Route) GetName() string {
	if r.name == "" {
		return ""
	}
	return r.namePrefix + r.name
}

// GetPathTemplate returns the normalized path template.
func (r *Route) GetPathTemplate() string {
	return r.template
}

// GetPattern returns the template with constrained placeholders rewritten
// into named capture groups.
func (r *Route) GetPattern() string {
	return r.pattern
}

// GetPathRegexp returns the compiled, anchored matching regexp.
func (r *Route) GetPathRegexp() string {
	if r.regexp == nil {
		return ""
	}
	return r.regexp.String()
}

// GetMethods returns the methods the route answers.
func (r *Route) GetMethods() []string {
	return slices.Clone(r.methods)
}

// GetHandler returns the route handler.
func (r *Route) GetHandler() Handler {
	return r.handler
}

// GetMiddlewares returns copies of the before and after middleware lists.
func (r *Route) GetMiddlewares() (before, after []any) {
	return slices.Clone(r.before), slices.Clone(r.after)
}

// GetConstraints returns the constraint of every constrained placeholder.
func (r *Route) GetConstraints() map[string]string {
	return maps.Clone(r.constraints)
}

// GetVarNames returns the placeholder names in template order.
func (r *Route) GetVarNames() []string {
	names := make([]string, len(r.vars))
	for i, v := range r.vars {
		names[i] = v.name
	}
	return names
}

// GetError returns any error that was set on the route.
func (r *Route) GetError() error {
	return r.err
}

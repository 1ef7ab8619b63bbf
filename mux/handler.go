package mux

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// HandlerFunc is the native handler and middleware signature. The returned
// value of the route handler is the result of Dispatch; results of
// middleware are discarded. A non-nil error stops the chain.
type HandlerFunc func(c *Context) (any, error)

// MethodRef names a handler by type and method. The type is instantiated
// with its zero value on every invocation and the method is called on a
// pointer to it, so both value and pointer receivers work.
type MethodRef struct {
	// Type is the name the type was registered under with
	// Router.RegisterType. It is prefixed with the router's handlers or
	// middlewares namespace when looked up.
	Type string

	// Method is the exported method to invoke.
	Method string

	typ reflect.Type
}

// Action returns a MethodRef bound directly to T, bypassing the router's
// type registry.
func Action[T any](method string) MethodRef {
	t := reflect.TypeFor[T]()
	return MethodRef{Type: t.String(), Method: method, typ: t}
}

func (m MethodRef) String() string {
	return m.Type + "." + m.Method
}

// Handler is a validated handler value: either a direct function or a
// MethodRef resolved at invocation time.
type Handler struct {
	fn  HandlerFunc
	ref *MethodRef
}

// NewHandler converts v into a Handler. Accepted values are HandlerFunc,
// func(*Context) (any, error), func(*Context) error, func(*Context),
// http.Handler, func(http.ResponseWriter, *http.Request), MethodRef and a
// (type, method) pair given as [2]string or a two-element []string.
// Anything else yields ErrInvalidHandlerKind.
func NewHandler(v any) (Handler, error) {
	switch h := v.(type) {
	case Handler:
		if h.fn == nil && h.ref == nil {
			return Handler{}, fmt.Errorf("%w: empty handler", ErrInvalidHandlerKind)
		}
		return h, nil
	case MethodRef:
		return refHandler(h)
	case *MethodRef:
		if h == nil {
			break
		}
		return refHandler(*h)
	case [2]string:
		return refHandler(MethodRef{Type: h[0], Method: h[1]})
	case []string:
		if len(h) != 2 {
			return Handler{}, fmt.Errorf("%w: pair must have 2 elements, got %d", ErrInvalidHandlerKind, len(h))
		}
		return refHandler(MethodRef{Type: h[0], Method: h[1]})
	}

	if fn, ok := adaptFunc(v); ok {
		return Handler{fn: fn}, nil
	}

	return Handler{}, fmt.Errorf("%w: got %T", ErrInvalidHandlerKind, v)
}

func refHandler(ref MethodRef) (Handler, error) {
	if (ref.Type == "" && ref.typ == nil) || ref.Method == "" {
		return Handler{}, fmt.Errorf("%w: incomplete method reference %q", ErrInvalidHandlerKind, ref.String())
	}
	return Handler{ref: &ref}, nil
}

// IsMethodRef reports whether the handler is resolved by type and method.
func (h Handler) IsMethodRef() bool {
	return h.ref != nil
}

func (h Handler) String() string {
	switch {
	case h.ref != nil:
		return h.ref.String()
	case h.fn != nil:
		return "func"
	}
	return "<nil>"
}

// adaptFunc converts the supported function shapes into a HandlerFunc.
func adaptFunc(v any) (HandlerFunc, bool) {
	switch f := v.(type) {
	case nil:
		return nil, false
	case HandlerFunc:
		return f, f != nil
	case func(*Context) (any, error):
		return f, f != nil
	case func(*Context) error:
		if f == nil {
			return nil, false
		}
		return func(c *Context) (any, error) {
			return nil, f(c)
		}, true
	case func(*Context):
		if f == nil {
			return nil, false
		}
		return func(c *Context) (any, error) {
			f(c)
			return nil, nil
		}, true
	case http.Handler:
		return func(c *Context) (any, error) {
			f.ServeHTTP(c.Response, c.Request)
			return nil, nil
		}, true
	case func(http.ResponseWriter, *http.Request):
		if f == nil {
			return nil, false
		}
		return func(c *Context) (any, error) {
			f(c.Response, c.Request)
			return nil, nil
		}, true
	}
	return nil, false
}

// resolve returns the function to call for h. Method references are looked
// up under namespace first and then under their bare type name.
func (r *Router) resolve(h Handler, namespace string) (HandlerFunc, error) {
	if h.fn != nil {
		return h.fn, nil
	}
	if h.ref == nil {
		return nil, fmt.Errorf("%w: empty handler", ErrInvalidHandlerKind)
	}

	t := h.ref.typ
	if t == nil {
		var ok bool
		if t, ok = r.lookupType(h.ref.Type, namespace); !ok {
			return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidHandlerKind, h.ref.Type)
		}
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	method := reflect.New(t).MethodByName(h.ref.Method)
	if !method.IsValid() {
		return nil, fmt.Errorf("%w: %s has no method %q", ErrInvalidHandlerKind, t, h.ref.Method)
	}

	fn, ok := adaptFunc(method.Interface())
	if !ok {
		return nil, fmt.Errorf("%w: unsupported signature %s for %s.%s", ErrInvalidHandlerKind, method.Type(), t, h.ref.Method)
	}
	return fn, nil
}

func (r *Router) lookupType(name, namespace string) (reflect.Type, bool) {
	if namespace != "" {
		if t, ok := r.types[strings.TrimSuffix(namespace, ".")+"."+name]; ok {
			return t, true
		}
	}
	t, ok := r.types[name]
	return t, ok
}

// invoke converts v into a handler and calls it with c.
func (r *Router) invoke(v any, namespace string, c *Context) (any, error) {
	h, err := NewHandler(v)
	if err != nil {
		return nil, err
	}
	fn, err := r.resolve(h, namespace)
	if err != nil {
		return nil, err
	}
	return fn(c)
}

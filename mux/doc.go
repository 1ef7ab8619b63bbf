// Package mux implements a request matcher and dispatcher that maps an
// incoming (method, path) pair to exactly one registered route and runs its
// middleware and handler chain.
//
// Routes are matched by a linear scan in registration order: the first
// route whose method set and anchored path pattern both match wins. Register
// specific patterns before general ones.
//
// # Router
//
// Create a router and register routes with one method per HTTP verb:
//
//	r := mux.NewRouter()
//	r.Get("/", home)
//	r.Post("/users", createUser)
//	r.Any("/ping", ping)
//	http.ListenAndServe(":8080", r)
//
// Supported methods are GET, POST, PUT, PATCH, DELETE and OPTIONS. HEAD
// requests are served by GET routes with the response body discarded, per
// RFC 9110 Section 9.3.2.
//
// # Paths
//
// Route and request paths are normalized before use: whitespace and repeated
// separators collapse to one "/", the leading separator is kept and the
// trailing one dropped. The empty path is "/".
//
// A route path is a regexp body anchored at both ends, so it may contain
// regexp syntax of its own.
//
// # Placeholders
//
// {name} marks a required path variable and {name?} an optional one.
// Constraints are attached with Where, or inline with {name:pattern}:
//
//	r.Get("/users/{id}", showUser).Where(map[string]string{"id": "[0-9]+"})
//	r.Get("/posts/{slug?}", listPosts).Where(map[string]string{"slug": "slug"})
//	r.Get("/days/{d:date}", showDay)
//
// A constraint is a raw regexp body or one of the macros: uuid, int, float,
// slug, alpha, alphanum, date, hex, domain. Placeholders without a
// constraint match one path segment.
//
// An optional placeholder directly after a "/" takes the separator with it,
// so "/posts/{slug?}" matches both "/posts" and "/posts/hello".
//
// # Handlers
//
// The native handler is HandlerFunc. Registration also accepts
// func(*Context) error, func(*Context), http.Handler,
// func(http.ResponseWriter, *http.Request), and method references:
//
//	r.RegisterType("UserController", UserController{})
//	r.Get("/users", [2]string{"UserController", "Index"})
//	r.Get("/users/{id}", mux.Action[UserController]("Show"))
//
// A method reference creates a zero value of its type on every call. The
// primary handler is validated at registration; middleware is validated when
// the chain reaches it. Both fail with ErrInvalidHandlerKind.
//
// # Groups
//
// Group scopes a name prefix, a path prefix and middleware over the routes
// registered inside the callback. Groups nest; a nested group starts from a
// copy of its parent:
//
//	r.Group(func(g *mux.RouteGroup) {
//	    g.PathPrefix("admin").NamePrefix("admin.").Before(requireAdmin)
//	    r.Get("/home", dashboard).Name("dashboard") // "admin.dashboard", "/admin/home"
//	})
//
// # Dispatch
//
// Dispatch runs before middleware (group entries first), the handler, then
// after middleware, and returns the handler result. Matched parameters are
// stored in the request context and in the Context:
//
//	func showUser(c *mux.Context) (any, error) {
//	    return map[string]string{"id": c.Param("id")}, nil
//	}
//
// Vars, VarGet and CurrentRoute read them back from an *http.Request.
//
// ServeHTTP writes the result: strings and byte slices verbatim, other
// values as JSON. An *HTTPError returned by a middleware writes its status.
//
// # Errors
//
//	ErrInvalidHandlerKind  handler is neither a function nor a (type, method) pair
//	ErrUnsupportedMethod   route registered for a method outside the supported set
//	ErrNoRoutesRegistered  dispatch on an empty table
//	ErrNotFound            no route matched and no not-found handler is set
//
// Registration failures never add the route to the table. Router.Err joins
// all of them.
//
// # Reverse Routing
//
//	r.Get("/articles/{id}", show).Name("article").Where(map[string]string{"id": "int"})
//	path, err := r.URL("article", map[string]string{"id": "42"}) // "/articles/42"
package mux

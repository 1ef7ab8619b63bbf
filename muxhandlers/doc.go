// Package muxhandlers provides reusable middleware for the mux router.
//
// Dispatch middleware are mux.HandlerFunc values registered with
// Route.Before, RouteGroup.Before or RouteGroup.Middlewares. They run in
// sequence ahead of the route handler and stop the chain by returning an
// error; a *mux.HTTPError selects the response status.
//
// # Request ID
//
// RequestID generates or propagates a request ID header. The ID is stored
// in the request context and can be read with RequestIDFromContext.
//
//	r.Group(func(g *mux.RouteGroup) {
//	    g.Before(muxhandlers.RequestID(muxhandlers.RequestIDConfig{
//	        GenerateFunc: muxhandlers.GenerateUUIDv7,
//	    }))
//	    r.Get("/users/{id}", showUser)
//	})
//
// # Basic Auth
//
// BasicAuth implements HTTP Basic Authentication per RFC 7617.
// Credentials can be validated via a dynamic callback or a static map.
//
//	auth, err := muxhandlers.BasicAuth(muxhandlers.BasicAuthConfig{
//	    Realm:       "Admin",
//	    Credentials: map[string]string{"admin": "secret"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.Get("/admin", dashboard).Before(auth)
//
// # Security Headers and Server
//
// SecurityHeaders sets common security response headers and Server sets
// X-Server-Hostname.
//
// # Recovery
//
// Recovery wraps the router as a plain http.Handler and turns panics into
// 500 responses:
//
//	http.ListenAndServe(":8080", muxhandlers.Recovery(r, muxhandlers.RecoveryConfig{}))
package muxhandlers

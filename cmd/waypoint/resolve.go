package main

import (
	"log/slog"
	"os"

	"github.com/vitalvas/waypoint/mux"
	"github.com/vitalvas/waypoint/muxhandlers"
)

// Environment variables holding the single basic_auth credential.
const (
	envBasicAuthUser     = "WAYPOINT_BASIC_AUTH_USER"
	envBasicAuthPassword = "WAYPOINT_BASIC_AUTH_PASSWORD"
)

// builtinMiddleware are the middleware names usable in manifests besides
// echo handlers.
var builtinMiddleware = map[string]func() (mux.HandlerFunc, error){
	"basic_auth": func() (mux.HandlerFunc, error) {
		credentials := make(map[string]string, 1)
		if user := os.Getenv(envBasicAuthUser); user != "" {
			credentials[user] = os.Getenv(envBasicAuthPassword)
		}
		return muxhandlers.BasicAuth(muxhandlers.BasicAuthConfig{
			Realm:       "waypoint",
			Credentials: credentials,
		})
	},
	"request_id": func() (mux.HandlerFunc, error) {
		return muxhandlers.RequestID(muxhandlers.RequestIDConfig{
			GenerateFunc:  muxhandlers.GenerateUUIDv7,
			TrustIncoming: true,
		}), nil
	},
	"security_headers": func() (mux.HandlerFunc, error) {
		return muxhandlers.SecurityHeaders(muxhandlers.SecurityHeadersConfig{})
	},
	"server": func() (mux.HandlerFunc, error) {
		return muxhandlers.Server(muxhandlers.ServerConfig{
			HostnameEnv: []string{"POD_NAME", "HOSTNAME"},
		})
	},
}

// echoResult is the body returned by the echo handler.
type echoResult struct {
	Handler   string            `json:"handler"`
	Route     string            `json:"route,omitempty"`
	Template  string            `json:"template"`
	Params    map[string]string `json:"params"`
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	RequestID string            `json:"request_id,omitempty"`
}

// resolveHandler maps a manifest handler or middleware name to a value the
// router accepts: a built-in middleware or an echo handler that describes
// the match.
func resolveHandler(name string) (any, error) {
	if build, ok := builtinMiddleware[name]; ok {
		return build()
	}
	return echoHandler(name), nil
}

func echoHandler(name string) mux.HandlerFunc {
	return func(c *mux.Context) (any, error) {
		route := c.Route()
		slog.Debug("echo handler", "handler", name, "template", route.GetPathTemplate())

		return echoResult{
			Handler:   name,
			Route:     route.GetName(),
			Template:  route.GetPathTemplate(),
			Params:    c.Params(),
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			RequestID: muxhandlers.RequestIDFromContext(c.Request.Context()),
		}, nil
	}
}

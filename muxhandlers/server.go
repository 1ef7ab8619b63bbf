package muxhandlers

import (
	"os"

	"github.com/vitalvas/waypoint/mux"
)

// ServerConfig configures the Server middleware behaviour.
type ServerConfig struct {
	// Hostname is the value written to the X-Server-Hostname response
	// header. Resolution order: Hostname field, then HostnameEnv
	// environment variable, then os.Hostname.
	Hostname string

	// HostnameEnv is a list of environment variable names checked in
	// order (e.g. ["POD_NAME", "HOSTNAME"]). The first non-empty
	// value is used.
	HostnameEnv []string
}

// Server returns a before middleware that sets the X-Server-Hostname
// response header. The hostname is resolved once when the middleware is
// created. It returns an error if the hostname cannot be determined.
func Server(cfg ServerConfig) (mux.HandlerFunc, error) {
	hostname := cfg.Hostname

	if hostname == "" {
		for _, env := range cfg.HostnameEnv {
			if v, ok := os.LookupEnv(env); ok && v != "" {
				hostname = v
				break
			}
		}
	}

	if hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return nil, err
		}

		hostname = h
	}

	return func(c *mux.Context) (any, error) {
		c.Response.Header().Set("X-Server-Hostname", hostname)
		return nil, nil
	}, nil
}

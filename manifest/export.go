package manifest

import (
	"github.com/vitalvas/waypoint/mux"
)

// FromRouter returns a flat manifest describing the routes registered on r,
// in match order. Paths are the normalized templates, so base path and
// group prefixes are already applied, and Where holds every constraint.
func FromRouter(r *mux.Router) *Manifest {
	m := &Manifest{}

	for _, route := range r.Routes() {
		before, after := route.GetMiddlewares()

		m.Routes = append(m.Routes, Route{
			Name:    route.GetName(),
			Methods: route.GetMethods(),
			Path:    route.GetPathTemplate(),
			Where:   route.GetConstraints(),
			Handler: route.GetHandler().String(),
			Before:  describe(before),
			After:   describe(after),
			Pattern: route.GetPathRegexp(),
		})
	}

	return m
}

// describe names middleware entries for export. Entries that are not valid
// handler values are reported as "<invalid>".
func describe(entries []any) []string {
	if len(entries) == 0 {
		return nil
	}

	out := make([]string, len(entries))
	for i, e := range entries {
		h, err := mux.NewHandler(e)
		if err != nil {
			out[i] = "<invalid>"
			continue
		}
		out[i] = h.String()
	}
	return out
}

package muxhandlers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vitalvas/waypoint/mux"
)

// newTestRouter registers handler on GET /test behind the given before
// middleware.
func newTestRouter(t testing.TB, handler any, before ...any) *mux.Router {
	t.Helper()

	r := mux.NewRouter()
	r.Get("/test", handler).Before(before...)
	require.NoError(t, r.Err())

	return r
}

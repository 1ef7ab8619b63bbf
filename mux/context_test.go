package mux

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVars(t *testing.T) {
	t.Run("no route context", func(t *testing.T) {
		req := newRequest(http.MethodGet, "/")
		assert.Nil(t, Vars(req))
		assert.Nil(t, CurrentRoute(req))

		_, ok := VarGet(req, "id")
		assert.False(t, ok)
	})

	t.Run("SetURLVars", func(t *testing.T) {
		req := SetURLVars(newRequest(http.MethodGet, "/"), map[string]string{"id": "42"})
		assert.Equal(t, map[string]string{"id": "42"}, Vars(req))

		val, ok := VarGet(req, "id")
		assert.True(t, ok)
		assert.Equal(t, "42", val)

		_, ok = VarGet(req, "missing")
		assert.False(t, ok)
	})

	t.Run("SetURLVars keeps current route", func(t *testing.T) {
		r := NewRouter()
		var got *Route
		route := r.Get("/x", func(c *Context) {
			req := SetURLVars(c.Request, map[string]string{"a": "b"})
			got = CurrentRoute(req)
		})

		_, err := r.Dispatch(httptest.NewRecorder(), newRequest(http.MethodGet, "/x"))
		require.NoError(t, err)
		assert.Same(t, route, got)
	})
}

func TestContextAccessors(t *testing.T) {
	c := &Context{params: map[string]string{"id": "1"}}
	assert.Nil(t, c.Route())
	assert.Equal(t, "1", c.Param("id"))
	assert.Empty(t, c.Param("missing"))

	empty := &Context{}
	assert.Empty(t, empty.Param("id"))
	assert.Nil(t, empty.Params())
}

func TestHeadResponseWriter(t *testing.T) {
	rec := httptest.NewRecorder()
	w := &headResponseWriter{ResponseWriter: rec}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusAccepted)
	n, err := w.Write([]byte("ignored"))
	require.NoError(t, err)

	assert.Equal(t, 7, n)
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
	assert.Empty(t, rec.Body.String())
	assert.Same(t, rec, w.Unwrap())
}

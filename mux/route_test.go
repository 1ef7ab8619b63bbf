package mux

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(*Context) {}

func TestRouteMatch(t *testing.T) {
	t.Run("matches path and method", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id}", noop)
		require.NoError(t, route.GetError())

		params, ok := route.Match(http.MethodGet, "/users/42")
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"id": "42"}, params)
	})

	t.Run("does not match other method", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id}", noop)

		_, ok := route.Match(http.MethodPost, "/users/42")
		assert.False(t, ok)
	})

	t.Run("does not match partial path", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id}", noop)

		_, ok := route.Match(http.MethodGet, "/users/42/posts")
		assert.False(t, ok)
		_, ok = route.Match(http.MethodGet, "/api/users/42")
		assert.False(t, ok)
	})

	t.Run("unconstrained placeholder matches one segment", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/files/{name}", noop)

		_, ok := route.Match(http.MethodGet, "/files/a/b")
		assert.False(t, ok)
	})

	t.Run("optional placeholder present", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/posts/{slug?}", noop)

		params, ok := route.Match(http.MethodGet, "/posts/hello")
		assert.True(t, ok)
		assert.Equal(t, "hello", params["slug"])
	})

	t.Run("optional placeholder absent", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/posts/{slug?}", noop)

		params, ok := route.Match(http.MethodGet, "/posts")
		assert.True(t, ok)
		_, exists := params["slug"]
		assert.False(t, exists)
	})

	t.Run("route with error never matches", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id}", noop).Where(map[string]string{"id": "([0-9"})
		require.Error(t, route.GetError())

		_, ok := route.Match(http.MethodGet, "/users/1")
		assert.False(t, ok)
	})

	t.Run("unnamed groups in constraints are skipped", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/color/{c}", noop).Where(map[string]string{"c": "(red|blue)"})
		require.NoError(t, route.GetError())

		params, ok := route.Match(http.MethodGet, "/color/red")
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"c": "red"}, params)
	})
}

func TestRouteWhere(t *testing.T) {
	t.Run("constrains placeholder", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id}", noop).Where(map[string]string{"id": "[0-9]+"})
		require.NoError(t, route.GetError())

		assert.Equal(t, "/users/(?P<id>[0-9]+)", route.GetPattern())
		_, ok := route.Match(http.MethodGet, "/users/abc")
		assert.False(t, ok)
		_, ok = route.Match(http.MethodGet, "/users/123")
		assert.True(t, ok)
	})

	t.Run("ignores unknown placeholders", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id}", noop).Where(map[string]string{"other": "int"})
		require.NoError(t, route.GetError())
		assert.Empty(t, route.GetConstraints())
	})

	t.Run("first constraint wins", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id:int}", noop).Where(map[string]string{"id": "alpha"})
		require.NoError(t, route.GetError())

		assert.Equal(t, map[string]string{"id": "int"}, route.GetConstraints())
		_, ok := route.Match(http.MethodGet, "/users/42")
		assert.True(t, ok)
	})

	t.Run("invalid constraint marks route", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/users/{id}", noop).Where(map[string]string{"id": "([0-9"})

		assert.ErrorContains(t, route.GetError(), "invalid constraint")
		assert.Error(t, r.Err())
	})

	t.Run("several placeholders at once", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/archive/{year}/{month}", noop).
			Where(map[string]string{"year": "[0-9]{4}", "month": "[0-9]{2}"})
		require.NoError(t, route.GetError())

		params, ok := route.Match(http.MethodGet, "/archive/2024/03")
		assert.True(t, ok)
		assert.Equal(t, map[string]string{"year": "2024", "month": "03"}, params)
	})
}

func TestRouteURL(t *testing.T) {
	r := NewRouter()
	static := r.Get("/about", noop)
	user := r.Get("/users/{id}", noop).Where(map[string]string{"id": "int"})
	post := r.Get("/posts/{slug?}", noop)
	file := r.Get("/files/{name}", noop)
	greet := r.Get("/greet/{name}", noop).Name("greet")
	require.NoError(t, r.Err())

	t.Run("static route", func(t *testing.T) {
		u, err := static.URL(nil)
		require.NoError(t, err)
		assert.Equal(t, "/about", u)
	})

	t.Run("substitutes params", func(t *testing.T) {
		u, err := user.URL(map[string]string{"id": "42"})
		require.NoError(t, err)
		assert.Equal(t, "/users/42", u)
	})

	t.Run("rejects value failing constraint", func(t *testing.T) {
		_, err := user.URL(map[string]string{"id": "abc"})
		assert.ErrorContains(t, err, `variable "id" doesn't match`)
	})

	t.Run("rejects missing required value", func(t *testing.T) {
		_, err := user.URL(nil)
		assert.ErrorContains(t, err, `missing route variable "id"`)
	})

	t.Run("drops missing optional value", func(t *testing.T) {
		u, err := post.URL(nil)
		require.NoError(t, err)
		assert.Equal(t, "/posts", u)
	})

	t.Run("keeps given optional value", func(t *testing.T) {
		u, err := post.URL(map[string]string{"slug": "hello"})
		require.NoError(t, err)
		assert.Equal(t, "/posts/hello", u)
	})

	t.Run("unconstrained value must be one segment", func(t *testing.T) {
		_, err := file.URL(map[string]string{"name": "a/b"})
		assert.Error(t, err)
	})

	t.Run("escapes values", func(t *testing.T) {
		tests := []struct {
			value    string
			expected string
		}{
			{value: "john doe", expected: "/greet/john%20doe"},
			{value: "a?b#c", expected: "/greet/a%3Fb%23c"},
			{value: "100%", expected: "/greet/100%25"},
			{value: "é", expected: "/greet/%C3%A9"},
		}

		for _, tt := range tests {
			u, err := greet.URL(map[string]string{"name": tt.value})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, u)
		}
	})

	t.Run("round-trips through FindMatch", func(t *testing.T) {
		for _, value := range []string{"john doe", "a?b#c", "100%", "é", "plain"} {
			u, err := r.URL("greet", map[string]string{"name": value})
			require.NoError(t, err)

			match, err := r.FindMatch(http.MethodGet, u)
			require.NoError(t, err, u)
			assert.Same(t, greet, match.Route)
			assert.Equal(t, map[string]string{"name": value}, match.Params)
		}
	})

	t.Run("dropped optional at root yields root", func(t *testing.T) {
		rr := NewRouter()
		home := rr.Get("/{lang?}", noop)
		require.NoError(t, rr.Err())

		u, err := home.URL(nil)
		require.NoError(t, err)
		assert.Equal(t, "/", u)
	})
}

func TestRouteGetters(t *testing.T) {
	r := NewRouter()
	before := func(*Context) error { return nil }
	route := r.Get("/users/{id}/{tab?}", noop).
		Where(map[string]string{"id": "int"}).
		Name("users.show").
		Before(before)
	require.NoError(t, r.Err())

	assert.Equal(t, "users.show", route.GetName())
	assert.Equal(t, "/users/{id}/{tab?}", route.GetPathTemplate())
	assert.Equal(t, "^(?:/users/(?P<id>[0-9]+)(?:/(?P<tab>[^/]+))?)$", route.GetPathRegexp())
	assert.Equal(t, []string{http.MethodGet}, route.GetMethods())
	assert.Equal(t, []string{"id", "tab"}, route.GetVarNames())
	assert.False(t, route.GetHandler().IsMethodRef())

	b, a := route.GetMiddlewares()
	assert.Len(t, b, 1)
	assert.Empty(t, a)

	t.Run("unnamed route", func(t *testing.T) {
		assert.Empty(t, r.Get("/x", noop).GetName())
	})

	t.Run("getters return copies", func(t *testing.T) {
		methods := route.GetMethods()
		methods[0] = "MUTATED"
		assert.Equal(t, []string{http.MethodGet}, route.GetMethods())

		constraints := route.GetConstraints()
		constraints["id"] = "alpha"
		assert.Equal(t, "int", route.GetConstraints()["id"])
	})
}

func TestRouteHandler(t *testing.T) {
	t.Run("invalid handler kind", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/x", 42)
		assert.ErrorIs(t, route.GetError(), ErrInvalidHandlerKind)
		assert.Empty(t, r.Routes())
	})

	t.Run("chained calls after error are no-ops", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/x/{id}", nil).Where(map[string]string{"id": "int"}).Handler(noop)
		assert.ErrorIs(t, route.GetError(), ErrInvalidHandlerKind)
		assert.Empty(t, route.GetConstraints())
	})

	t.Run("replaces handler", func(t *testing.T) {
		r := NewRouter()
		route := r.Get("/x", noop).Handler(func(*Context) (any, error) { return "replaced", nil })
		require.NoError(t, route.GetError())

		res, err := r.Dispatch(nil, newRequest(http.MethodGet, "/x"))
		require.NoError(t, err)
		assert.Equal(t, "replaced", res)
	})
}

func BenchmarkRouteMatch(b *testing.B) {
	r := NewRouter()
	route := r.Get("/users/{id}/posts/{slug}", noop).Where(map[string]string{"id": "int", "slug": "slug"})

	for b.Loop() {
		route.Match(http.MethodGet, "/users/42/posts/hello-world")
	}
}

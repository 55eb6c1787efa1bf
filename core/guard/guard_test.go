package guard_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/core/guard"
	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
	"github.com/Chrissankov/gymshark-ecommerce/core/session"
)

func newSession(t *testing.T, stored string) *session.Store {
	t.Helper()
	ctx := context.Background()
	storage := kv.NewMemory()
	if stored != "" {
		require.NoError(t, storage.Set(ctx, kv.KeyIsLoggedIn, stored))
	}
	s, err := session.New(ctx, storage)
	require.NoError(t, err)
	return s
}

func TestGuard_CanEnter(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		stored    string
		allowed   bool
		redirects []string
	}{
		{name: "absent flag", stored: "", allowed: false, redirects: []string{"/"}},
		{name: "false flag", stored: "false", allowed: false, redirects: []string{"/"}},
		{name: "true flag", stored: "true", allowed: true, redirects: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			g := guard.New(newSession(t, tc.stored))
			var redirects []string
			allowed := g.CanEnter(guard.NavigatorFunc(func(p string) { redirects = append(redirects, p) }))

			assert.Equal(t, tc.allowed, allowed)
			assert.Equal(t, tc.redirects, redirects)
		})
	}
}

func TestGuard_NotCached(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newSession(t, "")
	g := guard.New(s)

	assert.False(t, g.Check().Allowed)
	require.NoError(t, s.Login(ctx))
	assert.True(t, g.Check().Allowed)
	require.NoError(t, s.Logout(ctx))
	assert.Equal(t, guard.Decision{Allowed: false, Redirect: "/"}, g.Check())
}

func TestGuard_WithRedirect(t *testing.T) {
	t.Parallel()

	g := guard.New(newSession(t, ""), guard.WithRedirect("/login"))
	assert.Equal(t, "/login", g.Check().Redirect)
	assert.False(t, g.CanEnter(nil))
}

func TestGuard_Middleware(t *testing.T) {
	t.Parallel()

	protected := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	t.Run("denied redirects home", func(t *testing.T) {
		t.Parallel()

		h := guard.New(newSession(t, "false")).Middleware(protected)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ecommerce", nil))

		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/", rec.Header().Get("Location"))
	})

	t.Run("allowed reaches handler", func(t *testing.T) {
		t.Parallel()

		h := guard.New(newSession(t, "true")).Middleware(protected)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ecommerce", nil))

		assert.Equal(t, http.StatusTeapot, rec.Code)
	})
}

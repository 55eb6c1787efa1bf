package storefront_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/app/storefront"
	"github.com/Chrissankov/gymshark-ecommerce/core/catalog"
	"github.com/Chrissankov/gymshark-ecommerce/core/imageref"
	"github.com/Chrissankov/gymshark-ecommerce/core/kv"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 13, 'I', 'H', 'D', 'R'}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestApp(t *testing.T, storage kv.Storage) (*storefront.App, *client) {
	t.Helper()
	return newTestAppWithConfig(t, storage, storefront.Config{AdminUsername: "admin", AdminPassword: "admin"})
}

func newTestAppWithConfig(t *testing.T, storage kv.Storage, cfg storefront.Config) (*storefront.App, *client) {
	t.Helper()

	app, err := storefront.New(context.Background(), cfg,
		storefront.WithStorage(storage),
		storefront.WithEncoder(imageref.NewDataURIEncoder()),
	)
	require.NoError(t, err)

	srv := httptest.NewServer(app.Handler())
	t.Cleanup(func() {
		srv.Close()
		_ = app.Close()
	})

	return app, &client{
		t:    t,
		base: srv.URL,
		http: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
	}
}

func (c *client) do(method, path string, body any) *http.Response {
	c.t.Helper()

	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.base+path, r)
	require.NoError(c.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	c.t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func (c *client) login() {
	c.t.Helper()
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/api/auth/open", nil).StatusCode)
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"username": "admin", "password": "admin",
	}).StatusCode)
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestNavigation(t *testing.T) {
	t.Parallel()

	t.Run("home is unguarded", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		resp := c.do(http.MethodGet, "/", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Equal(t, "home", body["view"])
		assert.Equal(t, false, body["logged_in"])
	})

	t.Run("ecommerce redirects home without session", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		resp := c.do(http.MethodGet, "/ecommerce", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("ecommerce opens with persisted session", func(t *testing.T) {
		t.Parallel()
		storage := kv.NewMemory()
		require.NoError(t, storage.Set(context.Background(), kv.KeyIsLoggedIn, "true"))
		_, c := newTestApp(t, storage)

		resp := c.do(http.MethodGet, "/ecommerce", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.Len(t, body["products"], len(catalog.DefaultSeed()))
	})

	t.Run("unknown paths redirect home", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		resp := c.do(http.MethodGet, "/does/not/exist", nil)
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	})

	t.Run("api requires session", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/products", nil).StatusCode)
		assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/api/cart", nil).StatusCode)
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		resp := c.do(http.MethodGet, "/health", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestAuthFlow(t *testing.T) {
	t.Parallel()

	t.Run("login with seeded admin", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		c.login()

		body := decode[map[string]any](t, c.do(http.MethodGet, "/api/auth", nil))
		assert.Equal(t, "closed", body["state"])
		assert.Equal(t, true, body["logged_in"])
		assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/ecommerce", nil).StatusCode)
	})

	t.Run("submit without open dialog", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		resp := c.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "admin"})
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("wrong password keeps dialog open", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		c.do(http.MethodPost, "/api/auth/open", nil)
		resp := c.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

		body := decode[map[string]any](t, c.do(http.MethodGet, "/api/auth", nil))
		assert.Equal(t, "login", body["state"])
		assert.Equal(t, false, body["logged_in"])
	})

	t.Run("sign up", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())

		c.do(http.MethodPost, "/api/auth/open", nil)
		c.do(http.MethodPost, "/api/auth/toggle", nil)

		mismatch := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
			"username": "lifter", "password": "a", "confirm_password": "b",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, mismatch.StatusCode)

		duplicate := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
			"username": "admin", "password": "x", "confirm_password": "x",
		})
		assert.Equal(t, http.StatusConflict, duplicate.StatusCode)

		ok := c.do(http.MethodPost, "/api/auth/signup", map[string]string{
			"username": "lifter", "password": "pw", "confirm_password": "pw",
		})
		require.Equal(t, http.StatusCreated, ok.StatusCode)
		body := decode[map[string]any](t, ok)
		assert.Equal(t, "closed", body["state"])
		assert.Equal(t, true, body["logged_in"])

		assert.Equal(t, http.StatusOK, c.do(http.MethodPost, "/api/session/logout", nil).StatusCode)
		assert.Equal(t, http.StatusFound, c.do(http.MethodGet, "/ecommerce", nil).StatusCode)
	})
}

func TestLoginRateLimit(t *testing.T) {
	t.Parallel()

	_, c := newTestAppWithConfig(t, kv.NewMemory(), storefront.Config{
		AdminUsername:     "admin",
		AdminPassword:     "admin",
		LoginRateCapacity: 2,
		LoginRateInterval: time.Hour,
	})

	c.do(http.MethodPost, "/api/auth/open", nil)
	wrong := map[string]string{"username": "admin", "password": "nope"}

	for range 2 {
		resp := c.do(http.MethodPost, "/api/auth/login", wrong)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp := c.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "admin"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))

	// Other endpoints stay reachable.
	assert.Equal(t, http.StatusOK, c.do(http.MethodGet, "/api/auth", nil).StatusCode)
}

func TestProductsAPI(t *testing.T) {
	t.Parallel()

	t.Run("crud round trip", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		created := c.do(http.MethodPost, "/api/products", map[string]any{
			"name": "Lifting Belt", "description": "Leather", "color": "Brown", "price": 10,
		})
		require.Equal(t, http.StatusCreated, created.StatusCode)
		p := decode[catalog.Product](t, created)
		assert.Equal(t, "Lifting Belt", p.Name)
		for _, seed := range catalog.DefaultSeed() {
			assert.NotEqual(t, seed.ID, p.ID)
		}

		path := "/api/products/" + itoa(p.ID)
		updated := c.do(http.MethodPut, path, map[string]any{"name": "Belt", "price": 12})
		require.Equal(t, http.StatusOK, updated.StatusCode)
		assert.Equal(t, 12.0, decode[catalog.Product](t, updated).Price)

		assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, path, nil).StatusCode)
		assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, path, nil).StatusCode)
		assert.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, path, nil).StatusCode, "delete is idempotent")
	})

	t.Run("text fields are normalized", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		created := c.do(http.MethodPost, "/api/products", map[string]any{
			"name": "  <b>Power</b>\n Hoodie ", "color": " Navy ", "price": 40,
		})
		require.Equal(t, http.StatusCreated, created.StatusCode)
		p := decode[catalog.Product](t, created)
		assert.Equal(t, "Power Hoodie", p.Name)
		assert.Equal(t, "Navy", p.Color)

		blank := c.do(http.MethodPost, "/api/products", map[string]any{"name": " \t ", "price": 1})
		assert.Equal(t, http.StatusUnprocessableEntity, blank.StatusCode)
	})

	t.Run("long text is validated not truncated", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		name := strings.Repeat("n", 150)
		description := "Line one\nLine two"
		created := c.do(http.MethodPost, "/api/products", map[string]any{
			"name": name, "description": description, "price": 10,
		})
		require.Equal(t, http.StatusCreated, created.StatusCode)
		p := decode[catalog.Product](t, created)
		assert.Equal(t, name, p.Name)
		assert.Equal(t, description, p.Description)

		tooLong := c.do(http.MethodPost, "/api/products", map[string]any{
			"name": strings.Repeat("n", 201), "price": 10,
		})
		require.Equal(t, http.StatusUnprocessableEntity, tooLong.StatusCode)
		body := decode[map[string]any](t, tooLong)
		details, _ := body["details"].(map[string]any)
		fields, _ := details["fields"].(map[string]any)
		assert.Contains(t, fields, "name")
	})

	t.Run("update unknown product", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		resp := c.do(http.MethodPut, "/api/products/999", map[string]any{"name": "X"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("validation details", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		resp := c.do(http.MethodPost, "/api/products", map[string]any{"name": "", "price": -1})
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		details, _ := body["details"].(map[string]any)
		fields, _ := details["fields"].(map[string]any)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "price")
	})

	t.Run("filter", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		resp := c.do(http.MethodGet, "/api/products?filter="+queryEscape("price < 30"), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var ids []int64
		for _, p := range decode[[]catalog.Product](t, resp) {
			ids = append(ids, p.ID)
		}
		assert.ElementsMatch(t, []int64{3, 6}, ids)

		bad := c.do(http.MethodGet, "/api/products?filter="+queryEscape("price +"), nil)
		assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
	})

	t.Run("image upload", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("image", "hoodie.png")
		require.NoError(t, err)
		_, err = part.Write(pngBytes)
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		req, err := http.NewRequest(http.MethodPost, c.base+"/api/products/1/image?wait=true", &buf)
		require.NoError(t, err)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		resp, err := c.http.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decode[map[string]any](t, resp)
		assert.True(t, strings.HasPrefix(body["image"].(string), "data:image/png;base64,"))

		p := decode[catalog.Product](t, c.do(http.MethodGet, "/api/products/1", nil))
		assert.Equal(t, body["image"], p.Image)
	})

	t.Run("image upload requires file", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		resp := c.do(http.MethodPost, "/api/products/1/image", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCartAPI(t *testing.T) {
	t.Parallel()

	t.Run("toggle quantities and total", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		first := decode[map[string]any](t, c.do(http.MethodPost, "/api/cart/3/toggle", nil))
		assert.Equal(t, true, first["selected"])
		c.do(http.MethodPost, "/api/cart/3/increase", nil)
		c.do(http.MethodPost, "/api/cart/6/toggle", nil)
		c.do(http.MethodPost, "/api/cart/6/decrease", nil)

		cart := decode[map[string]any](t, c.do(http.MethodGet, "/api/cart", nil))
		assert.EqualValues(t, 2, cart["count"])
		assert.InDelta(t, 22*2+18, cart["total"], 0.001)
		assert.Contains(t, cart["total_display"], "$")
		assert.Contains(t, cart["total_display"], "62")

		second := decode[map[string]any](t, c.do(http.MethodPost, "/api/cart/6/toggle", nil))
		assert.Equal(t, false, second["selected"])

		checkout := decode[map[string]any](t, c.do(http.MethodPost, "/api/cart/checkout", nil))
		assert.InDelta(t, 44, checkout["total"], 0.001)
		empty := decode[map[string]any](t, c.do(http.MethodGet, "/api/cart", nil))
		assert.EqualValues(t, 0, empty["total"])
	})

	t.Run("deleted products stay until reconcile", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		c.do(http.MethodPost, "/api/cart/1/toggle", nil)
		c.do(http.MethodPost, "/api/cart/2/toggle", nil)
		c.do(http.MethodDelete, "/api/products/1", nil)

		before := decode[map[string]any](t, c.do(http.MethodGet, "/api/cart", nil))
		assert.EqualValues(t, 2, before["count"])

		after := decode[map[string]any](t, c.do(http.MethodPost, "/api/cart/reconcile", nil))
		assert.EqualValues(t, 1, after["removed"])
	})

	t.Run("deleted products can still be adjusted and removed", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		c.do(http.MethodPost, "/api/cart/1/toggle", nil)
		require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/api/products/1", nil).StatusCode)

		increased := c.do(http.MethodPost, "/api/cart/1/increase", nil)
		require.Equal(t, http.StatusOK, increased.StatusCode)
		adjusted := decode[struct {
			Items []struct {
				Quantity int `json:"quantity"`
			} `json:"items"`
		}](t, increased)
		require.Len(t, adjusted.Items, 1)
		assert.Equal(t, 2, adjusted.Items[0].Quantity)

		toggled := c.do(http.MethodPost, "/api/cart/1/toggle", nil)
		require.Equal(t, http.StatusOK, toggled.StatusCode)
		body := decode[map[string]any](t, toggled)
		assert.Equal(t, false, body["selected"])
		cart, _ := body["cart"].(map[string]any)
		assert.EqualValues(t, 0, cart["count"])
	})

	t.Run("unknown product", func(t *testing.T) {
		t.Parallel()
		_, c := newTestApp(t, kv.NewMemory())
		c.login()

		assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/api/cart/404/toggle", nil).StatusCode)
		assert.Equal(t, http.StatusBadRequest, c.do(http.MethodPost, "/api/cart/abc/toggle", nil).StatusCode)
	})
}

func TestLocaleAPI(t *testing.T) {
	t.Parallel()

	storage := kv.NewMemory()
	_, c := newTestApp(t, storage)

	body := decode[map[string]any](t, c.do(http.MethodGet, "/api/locale", nil))
	assert.Equal(t, "en", body["lang"])
	assert.Equal(t, "ltr", body["dir"])

	resp := c.do(http.MethodPut, "/api/locale", map[string]string{"lang": "ar"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rtl", decode[map[string]any](t, resp)["dir"])

	v, ok, err := storage.Get(context.Background(), kv.KeyCurrentLang)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "ar", v)

	assert.Equal(t, http.StatusUnprocessableEntity, c.do(http.MethodPut, "/api/locale", map[string]string{"lang": "fr"}).StatusCode)
}

func TestSessionSocket(t *testing.T) {
	t.Parallel()

	_, c := newTestApp(t, kv.NewMemory())

	url := "ws" + strings.TrimPrefix(c.base, "http") + "/ws/session"
	conn, _, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {c.base}})
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	var first map[string]bool
	require.NoError(t, conn.ReadJSON(&first))
	assert.False(t, first["logged_in"])

	c.login()

	var next map[string]bool
	require.NoError(t, conn.ReadJSON(&next))
	assert.True(t, next["logged_in"])
}

func TestOpenBackend(t *testing.T) {
	t.Parallel()

	t.Run("unknown driver", func(t *testing.T) {
		t.Parallel()

		_, err := storefront.OpenBackend(context.Background(), storefront.Config{StorageDriver: "etcd"}, nopLogger())
		assert.ErrorIs(t, err, storefront.ErrUnknownDriver)
	})

	t.Run("file driver survives reopen", func(t *testing.T) {
		t.Parallel()

		cfg := storefront.Config{
			StorageDriver: storefront.DriverFile,
			StorageFile:   filepath.Join(t.TempDir(), "store.json"),
		}
		ctx := context.Background()

		b, err := storefront.OpenBackend(ctx, cfg, nopLogger())
		require.NoError(t, err)
		require.NoError(t, b.Storage.Set(ctx, kv.KeyIsLoggedIn, "true"))
		require.NoError(t, b.Close())

		b, err = storefront.OpenBackend(ctx, cfg, nopLogger())
		require.NoError(t, err)
		defer b.Close()
		v, ok, err := b.Storage.Get(ctx, kv.KeyIsLoggedIn)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "true", v)
	})
}

func TestOpenBackend_SQLite(t *testing.T) {
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "store.db"))

	b, err := storefront.OpenBackend(context.Background(), storefront.Config{StorageDriver: storefront.DriverSQLite}, nopLogger())
	require.NoError(t, err)
	defer b.Close()

	require.Len(t, b.Checks, 1)
	assert.NoError(t, b.Checks[0](context.Background()))
}

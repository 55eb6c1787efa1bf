package response_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Chrissankov/gymshark-ecommerce/core/response"
)

type teapotError struct{}

func (teapotError) Error() string   { return "conflicting write" }
func (teapotError) StatusCode() int { return http.StatusConflict }

func TestJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes body and status", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, response.JSON(rec, http.StatusCreated, map[string]int{"id": 7}))

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"id":7}`, rec.Body.String())
	})

	t.Run("nil with zero status is no content", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, response.JSON(rec, 0, nil))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name string `json:"name"`
	}

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{name: "valid", body: `{"name":"Hoodie"}`},
		{name: "empty", body: ``, status: http.StatusBadRequest},
		{name: "malformed", body: `{"name":`, status: http.StatusBadRequest},
		{name: "unknown field", body: `{"nme":"x"}`, status: http.StatusBadRequest},
		{name: "trailing value", body: `{"name":"a"}{"name":"b"}`, status: http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var dst payload
			err := response.DecodeJSON(req, &dst)
			if tc.status == 0 {
				require.NoError(t, err)
				assert.Equal(t, "Hoodie", dst.Name)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tc.status, response.ToHTTPError(err).Status)
		})
	}

	t.Run("body over limit", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
		req.Body = http.MaxBytesReader(rec, req.Body, 16)

		var dst payload
		err := response.DecodeJSON(req, &dst)
		assert.Equal(t, http.StatusRequestEntityTooLarge, response.ToHTTPError(err).Status)
	})
}

func TestError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{name: "http error", err: response.ErrNotFound.WithMessage("product not found"), status: http.StatusNotFound, code: "not_found"},
		{name: "wrapped http error", err: errors.Join(errors.New("ctx"), response.ErrForbidden), status: http.StatusForbidden, code: "forbidden"},
		{name: "status coder", err: teapotError{}, status: http.StatusConflict, code: "conflict"},
		{name: "plain error", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_server_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec := httptest.NewRecorder()
			response.Error(rec, tc.err)

			assert.Equal(t, tc.status, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tc.code, body["code"])
		})
	}

	t.Run("with error does not mutate predefined value", func(t *testing.T) {
		t.Parallel()

		_ = response.ErrBadRequest.WithDetails(map[string]any{"field": "name"}).WithError(errors.New("x"))
		assert.Nil(t, response.ErrBadRequest.Details)
	})
}

func TestRedirect(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	response.Redirect(rec, httptest.NewRequest(http.MethodGet, "/ecommerce", nil), "/")

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestWebSocket(t *testing.T) {
	t.Parallel()

	connected := make(chan struct{}, 1)
	disconnected := make(chan struct{}, 1)

	handler := response.WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
		if err := conn.WriteJSON(map[string]bool{"logged_in": true}); err != nil {
			return err
		}
		ctx, cancel := response.WatchClose(ctx, conn)
		defer cancel()
		<-ctx.Done()
		return nil
	},
		response.WithWSAllowAnyOrigin(),
		response.WithWSOnConnect(func(context.Context, *websocket.Conn) error {
			connected <- struct{}{}
			return nil
		}),
		response.WithWSOnDisconnect(func(context.Context, *websocket.Conn) {
			disconnected <- struct{}{}
		}),
	)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)

	var msg map[string]bool
	require.NoError(t, conn.ReadJSON(&msg))
	assert.True(t, msg["logged_in"])

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	_ = conn.Close()

	select {
	case <-connected:
	case <-time.After(time.Second):
		t.Fatal("connect hook not called")
	}
	select {
	case <-disconnected:
	case <-time.After(time.Second):
		t.Fatal("disconnect hook not called")
	}
}

func TestWebSocket_UpgradeFailure(t *testing.T) {
	t.Parallel()

	var reported error
	handler := response.WebSocket(func(context.Context, *websocket.Conn) error {
		t.Fatal("handler must not run")
		return nil
	}, response.WithWSErrorHandler(func(_ context.Context, err error) { reported = err }))

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Error(t, reported)
}

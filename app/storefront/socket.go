package storefront

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Chrissankov/gymshark-ecommerce/core/logger"
	"github.com/Chrissankov/gymshark-ecommerce/core/response"
)

const socketWriteTimeout = 10 * time.Second

// sessionSocket pushes the session flag: the current value on connect, then
// every change. Slow clients only ever see the latest value.
func (a *App) sessionSocket() http.HandlerFunc {
	opts := []response.WebSocketOption{
		response.WithWSErrorHandler(func(ctx context.Context, err error) {
			a.logger.WarnContext(ctx, "session socket failed", logger.Component("storefront"), logger.Error(err))
		}),
	}
	if a.config.WSAllowAnyOrigin {
		opts = append(opts, response.WithWSAllowAnyOrigin())
	}

	return response.WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
		updates := make(chan bool, 1)
		sub := a.session.Subscribe(func(v bool) { offerLatest(updates, v) })
		defer sub.Close()

		ctx, cancel := response.WatchClose(ctx, conn)
		defer cancel()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-a.done:
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(socketWriteTimeout))
				return nil
			case v := <-updates:
				if err := conn.SetWriteDeadline(time.Now().Add(socketWriteTimeout)); err != nil {
					return err
				}
				if err := conn.WriteJSON(sessionView{LoggedIn: v}); err != nil {
					return err
				}
			}
		}
	}, opts...)
}

// offerLatest replaces any unread value in ch with v without blocking.
// ch must have capacity 1 and a single sender at a time.
func offerLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}

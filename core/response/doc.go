// Package response provides net/http response helpers shared by the storefront
// handlers and middleware: JSON bodies, structured error responses, redirects
// and WebSocket upgrades.
//
// # JSON
//
//	func listProducts(w http.ResponseWriter, r *http.Request) {
//		products, err := catalog.Filter(r.Context(), r.URL.Query().Get("q"))
//		if err != nil {
//			response.Error(w, err)
//			return
//		}
//		response.JSON(w, http.StatusOK, products)
//	}
//
// A nil value with status 0 produces 204 No Content. Bodies are never written
// for 204 and 304.
//
// # Errors
//
// Error renders any error as an HTTPError:
//
//   - an HTTPError (or one wrapped with %w) is rendered as is
//   - an error implementing StatusCode() int is mapped to the predefined
//     HTTPError for that status, with the error text in details.cause
//   - everything else becomes 500 Internal Server Error
//
// Predefined values are customised with copy-on-write helpers:
//
//	response.Error(w, response.ErrNotFound.WithMessage("product not found"))
//	response.Error(w, response.ErrUnprocessableEntity.WithError(err))
//
// # WebSocket
//
// WebSocket returns an http.HandlerFunc that upgrades the connection and hands
// it to a message handler. The connection is closed when the handler returns:
//
//	r.Get("/ws/session", response.WebSocket(func(ctx context.Context, conn *websocket.Conn) error {
//		return conn.WriteJSON(map[string]bool{"logged_in": true})
//	}, response.WithWSAllowAnyOrigin()))
package response

// Package middleware provides net/http middleware for the storefront server:
// request IDs, structured access logging, request body limits, security
// headers and per-client rate limiting.
//
// Every constructor returns func(http.Handler) http.Handler, so the
// middleware composes with chi or any other router:
//
//	r := chi.NewRouter()
//	r.Use(
//		middleware.RequestID(),
//		middleware.LoggingWithLogger(log),
//		middleware.BodyLimitWithSize(8<<20),
//		middleware.SecurityHeaders(),
//	)
//
// Each config struct has a Skip func(*http.Request) bool that bypasses the
// middleware for matching requests, for example health checks.
//
// RequestID should run first: Logging reads the ID through GetRequestID and
// attaches it to every access log line.
package middleware

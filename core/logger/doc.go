// Package logger builds *slog.Logger instances for the storefront services and
// provides nil-safe attribute helpers.
//
//	log := logger.New(
//		logger.WithDevelopment("storefront"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//	log.Info("catalog seeded", logger.Component("catalog"), logger.Count("products", 6))
//
// Development loggers write text at debug level, production loggers write JSON
// at info level. Both tag every record with the service name.
//
// Context values can be lifted into records automatically:
//
//	log := logger.New(logger.WithContextValue("request_id", requestIDKey{}))
//	log.InfoContext(ctx, "handled") // adds request_id when present in ctx
//
// Attribute helpers return the empty slog.Attr for nil or empty inputs, which
// slog drops, so callers never need a guard:
//
//	log.Warn("persist failed", logger.Error(err))
package logger

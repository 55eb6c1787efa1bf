package middleware

import (
	"maps"
	"net/http"
)

// SecurityHeadersConfig lists the response headers set on every request.
// Empty fields are not sent.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(r *http.Request) bool

	ContentTypeOptions        string // X-Content-Type-Options
	FrameOptions              string // X-Frame-Options
	StrictTransportSecurity   string // Strict-Transport-Security, dropped when IsDevelopment
	ContentSecurityPolicy     string // Content-Security-Policy
	ReferrerPolicy            string // Referrer-Policy
	PermissionsPolicy         string // Permissions-Policy
	CrossOriginOpenerPolicy   string // Cross-Origin-Opener-Policy
	CrossOriginResourcePolicy string // Cross-Origin-Resource-Policy

	// CustomHeaders are set after the named ones and may override them.
	CustomHeaders map[string]string

	// IsDevelopment disables HSTS so plain http://localhost keeps working.
	IsDevelopment bool
}

var (
	// StorefrontSecurity fits pages that show data URI or remote (S3) product
	// images and open a same-origin websocket for the session badge.
	StorefrontSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "DENY",
		StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
		ContentSecurityPolicy:     "default-src 'self'; img-src 'self' data: https:; connect-src 'self' ws: wss:; style-src 'self' 'unsafe-inline'; frame-ancestors 'none'; form-action 'self'",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		PermissionsPolicy:         "camera=(), geolocation=(), microphone=(), payment=()",
		CrossOriginOpenerPolicy:   "same-origin",
		CrossOriginResourcePolicy: "same-origin",
	}

	// RelaxedSecurity only prevents MIME sniffing and referrer leaks.
	RelaxedSecurity = SecurityHeadersConfig{
		ContentTypeOptions: "nosniff",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}
)

// SecurityHeaders applies StorefrontSecurity.
func SecurityHeaders() func(http.Handler) http.Handler {
	return SecurityHeadersWithConfig(StorefrontSecurity)
}

// SecurityHeadersWithConfig sets the configured headers before the handler runs.
func SecurityHeadersWithConfig(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string, 8+len(cfg.CustomHeaders))
	for name, value := range map[string]string{
		"X-Content-Type-Options":       cfg.ContentTypeOptions,
		"X-Frame-Options":              cfg.FrameOptions,
		"Strict-Transport-Security":    cfg.StrictTransportSecurity,
		"Content-Security-Policy":      cfg.ContentSecurityPolicy,
		"Referrer-Policy":              cfg.ReferrerPolicy,
		"Permissions-Policy":           cfg.PermissionsPolicy,
		"Cross-Origin-Opener-Policy":   cfg.CrossOriginOpenerPolicy,
		"Cross-Origin-Resource-Policy": cfg.CrossOriginResourcePolicy,
	} {
		if value != "" {
			headers[name] = value
		}
	}
	maps.Copy(headers, cfg.CustomHeaders)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip == nil || !cfg.Skip(r) {
				h := w.Header()
				for name, value := range headers {
					h.Set(name, value)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

package storefront

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/Chrissankov/gymshark-ecommerce/core/health"
	"github.com/Chrissankov/gymshark-ecommerce/core/response"
	"github.com/Chrissankov/gymshark-ecommerce/middleware"
	"github.com/Chrissankov/gymshark-ecommerce/pkg/clientip"
)

func (a *App) routes() http.Handler {
	r := chi.NewRouter()

	security := middleware.StorefrontSecurity
	security.IsDevelopment = a.config.IsDevelopment()

	r.Use(
		middleware.RequestID(),
		middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: a.logger,
			Skip:   isProbe,
		}),
		middleware.SecurityHeadersWithConfig(security),
	)

	// Unknown pages go home.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		response.Redirect(w, r, "/")
	})

	r.Get("/health", health.Readiness(a.logger, a.checks...))
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness(a.logger, a.checks...))

	r.Get("/", a.home)
	r.With(a.guard.Middleware).Get("/ecommerce", a.ecommerce)
	r.Get("/ws/session", a.sessionSocket())

	r.Route("/api", func(r chi.Router) {
		limits := middleware.BodyLimitConfig{MaxSize: a.config.BodyLimit}
		if a.config.UploadLimit > 0 {
			limits.ContentTypeLimit = map[string]int64{"multipart/form-data": a.config.UploadLimit}
		}
		r.Use(middleware.BodyLimitWithConfig(limits))
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			response.Error(w, response.ErrNotFound)
		})

		r.Get("/session", a.getSession)
		r.Post("/session/logout", a.logout)

		r.Route("/auth", func(r chi.Router) {
			r.Get("/", a.authState)
			r.Post("/open", a.authOpen)
			r.Post("/toggle", a.authToggle)
			r.Post("/cancel", a.authCancel)
			r.Group(func(r chi.Router) {
				if a.loginLimiter != nil {
					limit := middleware.RateLimitConfig{Limiter: a.loginLimiter, SetHeaders: true}
					if a.config.TrustProxyHeaders {
						limit.KeyExtractor = clientip.GetIP
					}
					r.Use(middleware.RateLimit(limit))
				}
				r.Post("/login", a.authLogin)
				r.Post("/signup", a.authSignUp)
			})
		})

		r.Get("/locale", a.getLocale)
		r.Put("/locale", a.setLocale)

		r.Group(func(r chi.Router) {
			r.Use(a.requireSession)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", a.listProducts)
				r.Post("/", a.createProduct)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", a.getProduct)
					r.Put("/", a.updateProduct)
					r.Delete("/", a.deleteProduct)
					r.Get("/image", a.getImage)
					r.Post("/image", a.uploadImage)
				})
			})

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", a.getCart)
				r.Post("/checkout", a.checkout)
				r.Post("/reconcile", a.reconcileCart)
				r.Post("/{id}/toggle", a.toggleCart)
				r.Post("/{id}/increase", a.increaseCart)
				r.Post("/{id}/decrease", a.decreaseCart)
			})
		})
	})

	return r
}

// requireSession is the API counterpart of the page guard: instead of
// redirecting it answers 401.
func (a *App) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.guard.Check().Allowed {
			response.Error(w, response.ErrUnauthorized.WithMessage("login required"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func isProbe(r *http.Request) bool {
	return strings.HasPrefix(r.URL.Path, "/health")
}

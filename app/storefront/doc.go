// Package storefront is the composition root of the storefront service.
//
// New builds every service exactly once over a single kv.Storage: the session
// flag, the access guard, the user registry (seeded with the configured admin
// account), the product catalog, the selection cart, the login dialog flow
// and the language preference. Handler exposes them over HTTP:
//
//	GET  /                        home view (unguarded)
//	GET  /ecommerce               shop view; without a session 302 to /
//	GET  /ws/session              websocket pushing {"logged_in": bool}
//	GET  /health, /health/live, /health/ready
//
//	GET  /api/session             POST /api/session/logout
//	GET  /api/auth                POST /api/auth/{open,toggle,cancel,login,signup}
//	GET  /api/locale              PUT  /api/locale
//	GET  /api/products?filter=    POST /api/products
//	GET|PUT|DELETE /api/products/{id}
//	GET|POST /api/products/{id}/image
//	GET  /api/cart                POST /api/cart/{checkout,reconcile}
//	POST /api/cart/{id}/{toggle,increase,decrease}
//
// Product and cart endpoints answer 401 without a session. Any other path
// redirects to /. Login and sign-up submissions are rate limited per client
// (LOGIN_RATE_CAPACITY per LOGIN_RATE_INTERVAL); Run drives the limiter's
// cleanup loop.
//
// Storage is chosen with STORAGE_DRIVER (memory, file, sqlite, redis,
// postgres, mongo); see OpenBackend. Product images are encoded as data URIs,
// or uploaded to S3 when S3_BUCKET is set.
package storefront

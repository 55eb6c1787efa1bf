package storefront

import (
	"time"

	"github.com/Chrissankov/gymshark-ecommerce/core/imageref"
	"github.com/Chrissankov/gymshark-ecommerce/core/locale"
	"github.com/Chrissankov/gymshark-ecommerce/core/server"
	"github.com/Chrissankov/gymshark-ecommerce/integration/storage/s3"
)

// Storage drivers accepted in STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// Config aggregates every setting of the storefront process. Driver specific
// settings (REDIS_URL, PG_CONN_URL, ...) are parsed only for the selected
// driver, so their required variables do not leak into other setups.
type Config struct {
	Server server.Config
	Image  imageref.Config
	S3     s3.Config
	Locale locale.Config

	AppName  string `env:"APP_NAME" envDefault:"storefront"`
	Env      string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"memory"`
	StorageFile   string `env:"STORAGE_FILE_PATH" envDefault:"data/storefront.json"`

	// Seed account installed when no users are persisted. Empty disables it.
	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"admin"`

	// Login and sign-up attempts per client host. Capacity <= 0 disables it.
	LoginRateCapacity int           `env:"LOGIN_RATE_CAPACITY" envDefault:"10"`
	LoginRateInterval time.Duration `env:"LOGIN_RATE_INTERVAL" envDefault:"1m"`
	// Key rate limits by proxy headers instead of the peer address.
	TrustProxyHeaders bool `env:"TRUST_PROXY_HEADERS" envDefault:"false"`

	BodyLimit        int64 `env:"HTTP_BODY_LIMIT" envDefault:"1048576"`
	UploadLimit      int64 `env:"HTTP_UPLOAD_LIMIT" envDefault:"8388608"`
	WSAllowAnyOrigin bool  `env:"WS_ALLOW_ANY_ORIGIN" envDefault:"false"`
}

// IsDevelopment reports whether the process runs with development defaults.
func (c Config) IsDevelopment() bool {
	switch c.Env {
	case "production", "prod", "staging", "stage":
		return false
	}
	return true
}

// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/Chrissankov/gymshark-ecommerce/core/config"
//
//	type StorageConfig struct {
//		Driver string `env:"STORAGE_DRIVER" envDefault:"file"`
//		Path   string `env:"STORAGE_FILE_PATH" envDefault:"storefront.json"`
//	}
//
//	func main() {
//		var storage StorageConfig
//
//		if err := config.Load(&storage); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&storage)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 StorageConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 StorageConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Use Parse or ParseWithPrefix for a fresh, uncached read.
//
// Different types are cached independently:
//
//	type ServerConfig struct {
//		Port int `env:"PORT" envDefault:"8080"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&ServerConfig{})
//	config.MustLoad(&StorageConfig{})
package config

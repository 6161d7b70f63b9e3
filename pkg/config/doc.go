// Package config loads typed configuration structs from environment
// variables (github.com/caarlos0/env/v11), with optional .env support
// (github.com/joho/godotenv).
//
//	type Config struct {
//		LoginLatency time.Duration `env:"AUTH_LOGIN_LATENCY" envDefault:"800ms"`
//	}
//
//	var cfg Config
//	config.MustLoad(&cfg)
package config

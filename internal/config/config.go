package config

import (
	"os"
	"strconv"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Verify VerifyConfig
}

// ServerConfig holds export API server settings
type ServerConfig struct {
	Port string
}

// VerifyConfig holds verification run settings
type VerifyConfig struct {
	// Strict makes the export API report WARNING findings as blocking
	// alongside ERROR ones.
	Strict bool
	// FilterBoundary drops signature-completeness findings for blocks
	// with a boundary or terminal shape from served reports.
	FilterBoundary bool
}

// Load reads configuration from environment variables. Defaults apply
// when a variable is unset; godotenv loading happens in the cmd mains.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: envOr("SERVER_PORT", "8080"),
		},
		Verify: VerifyConfig{
			Strict:         envBool("STRICT_VERIFY", false),
			FilterBoundary: envBool("FILTER_BOUNDARY_FINDINGS", true),
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the central typed configuration struct.
type Config struct {
	App   Profile
	Files FilesConfig
	Log   LogConfig
}

// Profile describes the active environment. Dependency predicates are
// evaluated against it, and its Version feeds the versioned file base path.
type Profile struct {
	Name    string
	Env     string // local | production | testing
	Version string
	Debug   bool
	URL     string
	Port    string
}

// IsProduction reports whether the profile runs in production.
func (p *Profile) IsProduction() bool { return p.Env == "production" }

// IsDebugMode reports whether debug tracing is enabled.
func (p *Profile) IsDebugMode() bool { return p.Debug }

// FilesConfig controls where file dependencies are fetched from.
type FilesConfig struct {
	BasePath string        // prefix for relative paths, default "Files"
	Origin   string        // HTTP origin relative paths are fetched from
	Timeout  time.Duration // per-file fetch timeout
}

type LogConfig struct {
	Level  string // debug | info | warn | error
	Format string // text | json
}

// Load reads .env (if present) and populates a Config from environment variables.
// Call once at bootstrap: cfg := config.Load()
func Load(envFiles ...string) *Config {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	return &Config{
		App: Profile{
			Name:    env("APP_NAME", "DepManager"),
			Env:     env("APP_ENV", "local"),
			Version: env("APP_VERSION", "1"),
			Debug:   envBool("APP_DEBUG", false),
			URL:     env("APP_URL", "http://localhost"),
			Port:    env("APP_PORT", "8000"),
		},
		Files: FilesConfig{
			BasePath: env("FILES_BASE_PATH", "Files"),
			Origin:   env("FILES_ORIGIN", "http://localhost:8000"),
			Timeout:  time.Duration(GetInt("FILES_TIMEOUT", 30)) * time.Second,
		},
		Log: LogConfig{
			Level:  env("LOG_LEVEL", "info"),
			Format: env("LOG_FORMAT", "text"),
		},
	}
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
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

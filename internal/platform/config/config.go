package config

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile      = ".env"
	defaultPort         = "8080"
	defaultReadTimeout  = 15 * time.Second
	defaultWriteTimeout = 30 * time.Second
	defaultIdleTimeout  = 120 * time.Second
	defaultManifest     = "glblist.txt"
	defaultManifestKind = "glb"
	defaultAssetsDir    = "assets"
	defaultAssetsPrefix = "assets/"
	defaultEnvironment  = "local"
	defaultLogLevel     = "info"
	defaultPublicURL    = "http://localhost:8080"
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Environment   string
	Server        ServerConfig
	Manifest      ManifestConfig
	Assets        AssetsConfig
	Session       SessionConfig
	Notice        NoticeConfig
	Observability ObservabilityConfig
	PublicURL     string
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// ManifestConfig locates the asset manifest. Ref is a file path, an http(s) URL or gs://bucket/object.
type ManifestConfig struct {
	Ref  string
	Kind string
}

// AssetsConfig selects where asset bytes are read from. A non-empty Bucket wins over Dir.
type AssetsConfig struct {
	Dir             string
	Bucket          string
	Prefix          string
	CredentialsFile string
}

// SessionConfig controls the signed gallery session cookie.
type SessionConfig struct {
	HashKey  string
	BlockKey string
	Secure   bool
}

// NoticeConfig points at an optional markdown document for the notice modal.
type NoticeConfig struct {
	File string
}

// ObservabilityConfig groups logging and tracing settings.
type ObservabilityConfig struct {
	LogLevel       string
	TraceProjectID string
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects explicit key/value pairs. Values in the map take precedence over the
// system environment.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from the process environment.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, the .env file, the process environment and
// the explicit env map, in increasing order of precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if value, ok := options.envMap[key]; ok {
			return value, true
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		value, ok := dotEnvValues[key]
		return value, ok
	}

	cfg := Config{
		Environment: strings.ToLower(stringWithDefault(lookup, "GALLERY_ENVIRONMENT", defaultEnvironment)),
		Server: ServerConfig{
			Port:         stringWithDefault(lookup, "GALLERY_SERVER_PORT", stringWithDefault(lookup, "PORT", defaultPort)),
			ReadTimeout:  durationWithDefault(lookup, "GALLERY_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout: durationWithDefault(lookup, "GALLERY_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:  durationWithDefault(lookup, "GALLERY_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
		},
		Manifest: ManifestConfig{
			Ref:  stringWithDefault(lookup, "GALLERY_MANIFEST", defaultManifest),
			Kind: strings.ToLower(stringWithDefault(lookup, "GALLERY_MANIFEST_KIND", defaultManifestKind)),
		},
		Assets: AssetsConfig{
			Dir:             stringWithDefault(lookup, "GALLERY_ASSETS_DIR", defaultAssetsDir),
			Bucket:          stringWithDefault(lookup, "GALLERY_ASSETS_BUCKET", ""),
			Prefix:          stringWithDefault(lookup, "GALLERY_ASSETS_PREFIX", defaultAssetsPrefix),
			CredentialsFile: stringWithDefault(lookup, "GALLERY_STORAGE_CREDENTIALS_FILE", ""),
		},
		Session: SessionConfig{
			HashKey:  stringWithDefault(lookup, "GALLERY_SESSION_HASH_KEY", ""),
			BlockKey: stringWithDefault(lookup, "GALLERY_SESSION_BLOCK_KEY", ""),
		},
		Notice: NoticeConfig{
			File: stringWithDefault(lookup, "GALLERY_NOTICE_FILE", ""),
		},
		Observability: ObservabilityConfig{
			LogLevel:       stringWithDefault(lookup, "GALLERY_LOG_LEVEL", defaultLogLevel),
			TraceProjectID: stringWithDefault(lookup, "GALLERY_TRACE_PROJECT_ID", ""),
		},
		PublicURL: strings.TrimRight(stringWithDefault(lookup, "GALLERY_PUBLIC_URL", defaultPublicURL), "/"),
	}
	cfg.Session.Secure = boolWithDefault(lookup, "GALLERY_SESSION_SECURE", cfg.Environment == "prod")

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// IsProduction reports whether the configured environment is production.
func (c Config) IsProduction() bool {
	return c.Environment == "prod"
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Port) == "" {
		missing = append(missing, "Server.Port")
	}
	if strings.TrimSpace(cfg.Manifest.Ref) == "" {
		missing = append(missing, "Manifest.Ref")
	}
	if strings.TrimSpace(cfg.Manifest.Kind) == "" {
		missing = append(missing, "Manifest.Kind")
	}
	if cfg.Assets.Bucket == "" && strings.TrimSpace(cfg.Assets.Dir) == "" {
		missing = append(missing, "Assets.Dir")
	}
	if cfg.IsProduction() && len(cfg.Session.HashKey) < 32 {
		missing = append(missing, "Session.HashKey")
	}
	if n := len(cfg.Session.BlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		missing = append(missing, "Session.BlockKey")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	value, ok := lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "yes", "on":
		return true
	case "no", "off":
		return false
	}
	if parsed, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
		return parsed
	}
	return fallback
}

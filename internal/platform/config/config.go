package config

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPPort            = "8080"
	defaultReadTimeout         = 10 * time.Second
	defaultWriteTimeout        = 30 * time.Second
	defaultIdleTimeout         = 120 * time.Second
	defaultShutdownTimeout     = 15 * time.Second
	defaultEnvironment         = "development"
	defaultStoreBackend        = "file"
	defaultDataDir             = "./data"
	defaultSubmissionsKey      = "wisecrew_apps"
	defaultSessionRateLimit    = 20
	defaultSessionRateWindow   = time.Minute
	defaultIdempotencyHeader   = "Idempotency-Key"
	defaultIdempotencyTTL      = 24 * time.Hour
	defaultIdempotencyCleanup  = 5 * time.Minute
	defaultMaxRequestBodyBytes = 64 * 1024
)

// Store backends selectable through API_STORE_BACKEND.
const (
	StoreBackendFile      = "file"
	StoreBackendFirestore = "firestore"
)

// ServerConfig holds HTTP server level settings.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// StoreConfig selects and parameterises the submission store backend.
type StoreConfig struct {
	Backend           string
	DataDir           string
	SubmissionsKey    string
	FirestoreProject  string
	FirestoreEmulator string
}

// IntakeConfig covers the public intake surface.
type IntakeConfig struct {
	SessionRateLimit  int
	SessionRateWindow time.Duration
}

// IdempotencyConfig parameterises the double-submit guard.
type IdempotencyConfig struct {
	Header          string
	TTL             time.Duration
	CleanupInterval time.Duration
}

// AdminConfig secures the staff listing endpoints.
type AdminConfig struct {
	JWTSecret string
}

// Config is the fully resolved runtime configuration.
type Config struct {
	Environment string
	Server      ServerConfig
	Store       StoreConfig
	Intake      IntakeConfig
	Idempotency IdempotencyConfig
	Admin       AdminConfig
}

// ValidationError reports configuration keys that are missing or malformed.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: invalid or missing fields: %s", strings.Join(e.Fields, ", "))
}

// Option customises the Load behaviour.
type Option func(*loadOptions)

type loadOptions struct {
	envMap     map[string]string
	dotEnvPath string
}

// EnvironmentValues overrides environment lookups with the provided map.
// Intended for tests.
func EnvironmentValues(values map[string]string) Option {
	return func(o *loadOptions) {
		o.envMap = values
	}
}

// DotEnvPath points the loader at an alternate .env file.
func DotEnvPath(path string) Option {
	return func(o *loadOptions) {
		o.dotEnvPath = path
	}
}

// Load resolves configuration from, in precedence order, the override map,
// the process environment, and a .env file.
func Load(ctx context.Context, opts ...Option) (Config, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	options := loadOptions{dotEnvPath: ".env"}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	dotEnv, err := loadDotEnv(options.dotEnvPath)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if v, ok := options.envMap[key]; ok {
				return v, true
			}
		}
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		if v, ok := dotEnv[key]; ok {
			return v, true
		}
		return "", false
	}

	cfg := Config{
		Environment: stringWithDefault(lookup, "API_ENVIRONMENT", defaultEnvironment),
		Server: ServerConfig{
			Port:            stringWithDefault(lookup, "API_HTTP_PORT", defaultHTTPPort),
			ReadTimeout:     durationWithDefault(lookup, "API_HTTP_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:    durationWithDefault(lookup, "API_HTTP_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:     durationWithDefault(lookup, "API_HTTP_IDLE_TIMEOUT", defaultIdleTimeout),
			ShutdownTimeout: durationWithDefault(lookup, "API_HTTP_SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
			MaxBodyBytes:    int64(intWithDefault(lookup, "API_HTTP_MAX_BODY_BYTES", defaultMaxRequestBodyBytes)),
		},
		Store: StoreConfig{
			Backend:           strings.ToLower(stringWithDefault(lookup, "API_STORE_BACKEND", defaultStoreBackend)),
			DataDir:           stringWithDefault(lookup, "API_STORE_DATA_DIR", defaultDataDir),
			SubmissionsKey:    stringWithDefault(lookup, "API_STORE_SUBMISSIONS_KEY", defaultSubmissionsKey),
			FirestoreProject:  stringWithDefault(lookup, "API_FIRESTORE_PROJECT", ""),
			FirestoreEmulator: stringWithDefault(lookup, "FIRESTORE_EMULATOR_HOST", ""),
		},
		Intake: IntakeConfig{
			SessionRateLimit:  intWithDefault(lookup, "API_INTAKE_RATE_LIMIT", defaultSessionRateLimit),
			SessionRateWindow: durationWithDefault(lookup, "API_INTAKE_RATE_WINDOW", defaultSessionRateWindow),
		},
		Idempotency: IdempotencyConfig{
			Header:          stringWithDefault(lookup, "API_IDEMPOTENCY_HEADER", defaultIdempotencyHeader),
			TTL:             durationWithDefault(lookup, "API_IDEMPOTENCY_TTL", defaultIdempotencyTTL),
			CleanupInterval: durationWithDefault(lookup, "API_IDEMPOTENCY_CLEANUP_INTERVAL", defaultIdempotencyCleanup),
		},
		Admin: AdminConfig{
			JWTSecret: stringWithDefault(lookup, "API_ADMIN_JWT_SECRET", ""),
		},
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var fields []string

	if cfg.Store.Backend != StoreBackendFile && cfg.Store.Backend != StoreBackendFirestore {
		fields = append(fields, "API_STORE_BACKEND")
	}
	if cfg.Store.Backend == StoreBackendFile && strings.TrimSpace(cfg.Store.DataDir) == "" {
		fields = append(fields, "API_STORE_DATA_DIR")
	}
	if cfg.Store.Backend == StoreBackendFirestore && strings.TrimSpace(cfg.Store.FirestoreProject) == "" {
		fields = append(fields, "API_FIRESTORE_PROJECT")
	}
	if strings.TrimSpace(cfg.Store.SubmissionsKey) == "" {
		fields = append(fields, "API_STORE_SUBMISSIONS_KEY")
	}
	if cfg.Intake.SessionRateLimit <= 0 {
		fields = append(fields, "API_INTAKE_RATE_LIMIT")
	}
	if cfg.Idempotency.TTL <= 0 {
		fields = append(fields, "API_IDEMPOTENCY_TTL")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		fields = append(fields, "API_HTTP_MAX_BODY_BYTES")
	}

	if len(fields) > 0 {
		sort.Strings(fields)
		return &ValidationError{Fields: fields}
	}
	return nil
}

func loadDotEnv(path string) (map[string]string, error) {
	values := map[string]string{}
	if path == "" {
		return values, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = strings.Trim(value, `"'`)
		if key != "" {
			values[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return values, nil
}

type lookupFunc func(string) (string, bool)

func stringWithDefault(lookup lookupFunc, key, fallback string) string {
	if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func durationWithDefault(lookup lookupFunc, key string, fallback time.Duration) time.Duration {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return d
}

func intWithDefault(lookup lookupFunc, key string, fallback int) int {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return n
}

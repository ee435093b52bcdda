package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPAddr        string
	DatabaseDSN     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ShutdownTimeout time.Duration

	SampleCSV      string
	ETLRows        int
	BatchSize      int
	NumberAttempts int

	Debug bool
}

// Load reads envFile into the process environment when it exists and then
// builds the configuration from the environment. Variables already set in
// the environment win over the file.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from getenv.
func FromEnv(getenv func(string) string) (Config, error) {
	e := env{getenv: getenv}
	cfg := Config{
		HTTPAddr:        e.str("HTTP_ADDR", ":8080"),
		DatabaseDSN:     e.str("DATABASE_DSN", ""),
		MaxOpenConns:    e.int("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    e.int("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: e.duration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ShutdownTimeout: e.duration("SHUTDOWN_TIMEOUT", 5*time.Second),
		SampleCSV:       e.str("SAMPLE_CSV", "sample_data.csv"),
		ETLRows:         e.int("ETL_ROWS", 50),
		BatchSize:       e.int("ETL_BATCH_SIZE", 10),
		NumberAttempts:  e.int("NUMBER_ATTEMPTS", 5),
		Debug:           e.bool("LOG_DEBUG", false),
	}
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			e.str("DB_HOST", "localhost"),
			e.str("DB_PORT", "5432"),
			e.str("DB_USER", "postgres"),
			e.str("DB_PASSWORD", "postgres"),
			e.str("DB_NAME", "complaints_db"),
			e.str("DB_SSLMODE", "disable"),
		)
	}
	if e.err != nil {
		return Config{}, e.err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the service cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.ETLRows < 0 {
		errs = append(errs, fmt.Errorf("ETL_ROWS must not be negative, got %d", c.ETLRows))
	}
	if c.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("ETL_BATCH_SIZE must be positive, got %d", c.BatchSize))
	}
	if c.NumberAttempts < 1 {
		errs = append(errs, fmt.Errorf("NUMBER_ATTEMPTS must be positive, got %d", c.NumberAttempts))
	}
	if c.MaxOpenConns < 0 || c.MaxIdleConns < 0 {
		errs = append(errs, errors.New("connection pool limits must not be negative"))
	}
	return errors.Join(errs...)
}

// env collects the first parse error so FromEnv can read every key in one
// pass.
type env struct {
	getenv func(string) string
	err    error
}

func (e *env) str(key, def string) string {
	if v := e.getenv(key); v != "" {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return n
}

func (e *env) bool(key string, def bool) bool {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return b
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(key, v, err)
		return def
	}
	return d
}

func (e *env) fail(key, value string, err error) {
	if e.err == nil {
		e.err = fmt.Errorf("invalid %s=%q: %w", key, value, err)
	}
}

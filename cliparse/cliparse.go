package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	AdminKeySalt string
	MaxBallots   int64
	CacheSize    int
}

// DefaultMaxBallots caps the ballot papers a single request may submit.
const DefaultMaxBallots = 1_000_000

// DefaultCacheSize is how many count results the server keeps in memory.
const DefaultCacheSize = 256

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	// A missing .env is fine; real deployments set the environment directly.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	fs := flag.NewFlagSet("senate-recount", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.Int64Var(&cfg.MaxBallots, "max-ballots", 0, "Maximum ballot papers per count request")
	fs.IntVar(&cfg.CacheSize, "cache-size", 0, "Count results kept in memory")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKeySalt, "admin-salt", "", "Admin key salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.MaxBallots == 0 {
		if s := os.Getenv("MAX_BALLOTS"); s != "" {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid MAX_BALLOTS env variable")
			}
			cfg.MaxBallots = n
		} else {
			cfg.MaxBallots = DefaultMaxBallots
		}
	}
	if cfg.MaxBallots < 0 {
		return Config{}, errors.New("max ballots must be positive")
	}

	if cfg.CacheSize == 0 {
		if s := os.Getenv("RESULT_CACHE_SIZE"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid RESULT_CACHE_SIZE env variable")
			}
			cfg.CacheSize = n
		} else {
			cfg.CacheSize = DefaultCacheSize
		}
	}
	if cfg.CacheSize < 1 {
		return Config{}, errors.New("cache size must be positive")
	}

	// Secrets - MUST be provided
	if cfg.AdminKeySalt == "" {
		cfg.AdminKeySalt = os.Getenv("ADMIN_KEY_SALT")
	}
	if cfg.AdminKeySalt == "" {
		return Config{}, errors.New("ADMIN_KEY_SALT required")
	}

	return cfg, nil
}

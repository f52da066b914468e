// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_URL", "file:test.db")
	t.Setenv("ADMIN_KEY_SALT", "test-salt")
	t.Setenv("MAX_BALLOTS", "500")
	t.Setenv("RESULT_CACHE_SIZE", "32")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.MaxBallots != 500 {
		t.Errorf("expected max ballots 500, got %d", cfg.MaxBallots)
	}
	if cfg.CacheSize != 32 {
		t.Errorf("expected cache size 32, got %d", cfg.CacheSize)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "sqlite")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "postgres://x", "-t", "postgres", "-admin-salt", "s1"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("CLI should override env: expected postgres, got %q", cfg.DatabaseType)
	}
	if cfg.MaxBallots != DefaultMaxBallots {
		t.Errorf("expected default max ballots, got %d", cfg.MaxBallots)
	}
	if cfg.CacheSize != DefaultCacheSize {
		t.Errorf("expected default cache size, got %d", cfg.CacheSize)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing database url", map[string]string{"ADMIN_KEY_SALT": "s"}, nil},
		{"missing salt", map[string]string{"DATABASE_URL": "file:x.db"}, nil},
		{"bad port", map[string]string{"PORT": "http", "DATABASE_URL": "file:x.db", "ADMIN_KEY_SALT": "s"}, nil},
		{"bad database type", nil, []string{"-d", "file:x.db", "-t", "mysql", "-admin-salt", "s"}},
		{"bad max ballots", map[string]string{"MAX_BALLOTS": "lots"}, []string{"-d", "file:x.db", "-admin-salt", "s"}},
		{"bad cache size", map[string]string{"RESULT_CACHE_SIZE": "big"}, []string{"-d", "file:x.db", "-admin-salt", "s"}},
		{"negative cache size", nil, []string{"-d", "file:x.db", "-admin-salt", "s", "-cache-size", "-1"}},
		{"unknown flag", nil, []string{"-slug-salt", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY_SALT", "MAX_BALLOTS", "RESULT_CACHE_SIZE"} {
				t.Setenv(k, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DATABASE_URL=file:dotenv.db\nADMIN_KEY_SALT=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	for _, k := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "ADMIN_KEY_SALT", "MAX_BALLOTS", "RESULT_CACHE_SIZE"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DatabaseURL != "file:dotenv.db" || cfg.AdminKeySalt != "from-dotenv" {
		t.Errorf("expected values from .env, got %+v", cfg)
	}
}

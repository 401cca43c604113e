package config

import (
	"testing"
	"time"
)

// clearEnv resets every variable Load reads so tests see a clean slate.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JWT_SECRET_KEY", "JWT_TTL",
		"REDIS_HOST", "REDIS_PORT", "REDIS_DB", "CACHE_TTL",
		"MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DB", "MYSQL_HOST",
		"INSTANCE_CONNECTION_NAME", "GAE_ENV",
		"HTTP_PORT", "ADMIN_USERNAME", "ADMIN_PASSWORD",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("REDIS_HOST", "localhost")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.JWTTTL != 15*time.Minute {
		t.Errorf("JWTTTL = %v, want 15m", cfg.JWTTTL)
	}
	if cfg.RedisPort != 6379 {
		t.Errorf("RedisPort = %d, want 6379", cfg.RedisPort)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("RedisDB = %d, want 0", cfg.RedisDB)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Errorf("CacheTTL = %v, want 60s", cfg.CacheTTL)
	}
	if cfg.MySQLUser != "root" {
		t.Errorf("MySQLUser = %q, want root", cfg.MySQLUser)
	}
	if cfg.MySQLDB != "gerenciador_tarefas" {
		t.Errorf("MySQLDB = %q, want gerenciador_tarefas", cfg.MySQLDB)
	}
	if cfg.MySQLHost != "localhost" {
		t.Errorf("MySQLHost = %q, want localhost", cfg.MySQLHost)
	}
	if cfg.HTTPPort != 3000 {
		t.Errorf("HTTPPort = %d, want 3000", cfg.HTTPPort)
	}
	if cfg.AdminUsername != "admin" {
		t.Errorf("AdminUsername = %q, want admin", cfg.AdminUsername)
	}
	if cfg.SocketMode() {
		t.Error("SocketMode() = true with no GAE_ENV set")
	}
}

func TestLoad_RequiredVariables(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing JWT_SECRET_KEY",
			env: map[string]string{
				"REDIS_HOST": "localhost",
			},
		},
		{
			name: "missing REDIS_HOST",
			env: map[string]string{
				"JWT_SECRET_KEY": "test-secret",
			},
		},
		{
			name: "socket mode without instance name",
			env: map[string]string{
				"JWT_SECRET_KEY": "test-secret",
				"REDIS_HOST":     "localhost",
				"GAE_ENV":        "standard",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			if _, err := Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("JWT_TTL", "1h")
	t.Setenv("HTTP_PORT", "8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RedisAddr() != "redis.internal:6380" {
		t.Errorf("RedisAddr() = %q, want redis.internal:6380", cfg.RedisAddr())
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("CacheTTL = %v, want 30s", cfg.CacheTTL)
	}
	if cfg.JWTTTL != time.Hour {
		t.Errorf("JWTTTL = %v, want 1h", cfg.JWTTTL)
	}
	if cfg.HTTPPort != 8080 {
		t.Errorf("HTTPPort = %d, want 8080", cfg.HTTPPort)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "not-a-number")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.RedisPort != 6379 {
		t.Errorf("RedisPort = %d, want default 6379", cfg.RedisPort)
	}
	if cfg.CacheTTL != 60*time.Second {
		t.Errorf("CacheTTL = %v, want default 60s", cfg.CacheTTL)
	}
}

func TestMySQLDSN(t *testing.T) {
	t.Run("tcp mode", func(t *testing.T) {
		cfg := &Config{
			MySQLUser:     "root",
			MySQLPassword: "pw",
			MySQLDB:       "gerenciador_tarefas",
			MySQLHost:     "db.internal",
		}

		want := "root:pw@tcp(db.internal:3306)/gerenciador_tarefas?parseTime=true"
		if got := cfg.MySQLDSN(); got != want {
			t.Errorf("MySQLDSN() = %q, want %q", got, want)
		}
	})

	t.Run("socket mode", func(t *testing.T) {
		cfg := &Config{
			MySQLUser:              "root",
			MySQLPassword:          "pw",
			MySQLDB:                "gerenciador_tarefas",
			GAEEnv:                 "standard",
			InstanceConnectionName: "proj:region:instance",
		}

		if !cfg.SocketMode() {
			t.Fatal("SocketMode() = false, want true")
		}
		want := "root:pw@unix(/cloudsql/proj:region:instance)/gerenciador_tarefas?parseTime=true"
		if got := cfg.MySQLDSN(); got != want {
			t.Errorf("MySQLDSN() = %q, want %q", got, want)
		}
	})
}

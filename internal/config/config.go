package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config del proceso docstored.
type Config struct {
	// Addr es la dirección de listen HTTP, p.ej. ":8080".
	Addr string `koanf:"addr"`

	// DBDSN: DSN de Postgres. Vacío = repo in-memory (dev).
	DBDSN string `koanf:"db_dsn"`

	// Timeouts del http.Server.
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// LogLevel: debug|info|warn|error. LogFormat: text|json.
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// Defaults razonables para dev.
func New() *Config {
	return &Config{
		Addr:         ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// Load arma la Config por capas (precedencia baja -> alta):
//  1. defaults (New())
//  2. archivo YAML si AGENDA_CONFIG está seteado
//  3. env con prefijo AGENDA_ (AGENDA_ADDR, AGENDA_DB_DSN, ...)
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("AGENDA_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	envProvider := env.Provider("AGENDA_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "agenda_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if cfg.Addr == "" {
		return nil, errors.New("addr must not be empty")
	}
	return &cfg, nil
}

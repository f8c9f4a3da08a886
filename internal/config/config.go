package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// MinSecretLength is the shortest signature secret the server accepts.
const MinSecretLength = 32

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Database   DatabaseConfig   `mapstructure:"database"`
	NATS       NATSConfig       `mapstructure:"nats"`
	Log        LogConfig        `mapstructure:"log"`
	Signature  SignatureConfig  `mapstructure:"signature"`
	Credential CredentialConfig `mapstructure:"credential"`
	Store      StoreConfig      `mapstructure:"store"`
	Sweep      SweepConfig      `mapstructure:"sweep"`
	Election   ElectionConfig   `mapstructure:"election"`
	Voter      VoterConfig      `mapstructure:"voter"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN is the lib/pq connection string for the database.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s", c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

type SignatureConfig struct {
	Secret         string        `mapstructure:"secret"`
	MaxSkew        time.Duration `mapstructure:"max_skew"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
	NonceCacheSize int           `mapstructure:"nonce_cache_size"`
}

type CredentialConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type StoreConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

type SweepConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

type ElectionConfig struct {
	Candidates []string `mapstructure:"candidates"`
}

type VoterConfig struct {
	IDPepper string `mapstructure:"id_pepper"`
}

var defaults = map[string]any{
	"server.host":                "0.0.0.0",
	"server.port":                8080,
	"storage.driver":             "postgres",
	"database.host":              "localhost",
	"database.port":              5432,
	"database.user":              "postgres",
	"database.password":          "postgres",
	"database.dbname":            "ballots",
	"database.sslmode":           "disable",
	"nats.url":                   "",
	"nats.subject":               "ballot.recorded",
	"log.level":                  "info",
	"log.json":                   false,
	"signature.secret":           "",
	"signature.max_skew":         "5m",
	"signature.max_body_bytes":   65536,
	"signature.nonce_cache_size": 100000,
	"credential.ttl":             "15m",
	"store.timeout":              "3s",
	"sweep.interval":             "5m",
	"election.candidates":        "",
	"voter.id_pepper":            "",
}

// Load reads an optional .env file and then the environment. Keys map to
// variables by upper-casing and replacing dots, so signature.max_skew is
// SIGNATURE_MAX_SKEW.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.Election.Candidates = compact(cfg.Election.Candidates)
	return &cfg, nil
}

// Validate checks the settings the server cannot run without. Commands that
// only touch the database do not call it.
func (c *Config) Validate() error {
	var errs []error

	if len(c.Signature.Secret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("SIGNATURE_SECRET must be at least %d bytes", MinSecretLength))
	}
	if c.Signature.MaxSkew <= 0 {
		errs = append(errs, errors.New("SIGNATURE_MAX_SKEW must be positive"))
	}
	if c.Signature.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("SIGNATURE_MAX_BODY_BYTES must be positive"))
	}
	if c.Signature.NonceCacheSize <= 0 {
		errs = append(errs, errors.New("SIGNATURE_NONCE_CACHE_SIZE must be positive"))
	}
	if c.Credential.TTL <= 0 {
		errs = append(errs, errors.New("CREDENTIAL_TTL must be positive"))
	}
	switch c.Storage.Driver {
	case "postgres", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	return errors.Join(errs...)
}

func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

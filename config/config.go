package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Env        string           `mapstructure:"env"`
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Auth       AuthConfig       `mapstructure:"auth"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Log        LogConfig        `mapstructure:"log"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
	Scheduler  SchedulerConfig  `mapstructure:"scheduler"`
	Jira       JiraConfig       `mapstructure:"jira"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	StaticDir    string        `mapstructure:"static_dir"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // sqlite3 or pgx
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	Seed         bool   `mapstructure:"seed"`
}

type AuthConfig struct {
	ProjectID         string `mapstructure:"project_id"`
	CredentialsJSON   string `mapstructure:"credentials_json"`
	CredentialsBase64 string `mapstructure:"credentials_base64"`
	CredentialsFile   string `mapstructure:"credentials_file"`
	DevUserID         string `mapstructure:"dev_user_id"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type LogConfig struct {
	Level       string `mapstructure:"level"`
	Development bool   `mapstructure:"development"`
}

type EncryptionConfig struct {
	Key string `mapstructure:"key"`
}

type SchedulerConfig struct {
	SummaryInterval time.Duration `mapstructure:"summary_interval"`
}

type JiraConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Issuer       string        `mapstructure:"issuer"`
	SharedSecret string        `mapstructure:"shared_secret"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// IsDevelopment reports whether the service runs outside production
func (c *Config) IsDevelopment() bool {
	return c.Env != "production"
}

// GetDefaults returns a Config with all default values
func GetDefaults() *Config {
	return &Config{
		Env: "development",
		Server: ServerConfig{
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			StaticDir:    "./dist",
		},
		Database: DatabaseConfig{
			Driver:       "sqlite3",
			DSN:          "./costconsole.db",
			MaxOpenConns: 5,
			Seed:         false,
		},
		Auth: AuthConfig{
			DevUserID: "admin-user-1",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://localhost:8080",
			},
		},
		Log: LogConfig{
			Level:       "info",
			Development: true,
		},
		Scheduler: SchedulerConfig{
			SummaryInterval: time.Hour,
		},
		Jira: JiraConfig{
			Issuer:  "costconsole-jira",
			Timeout: 30 * time.Second,
		},
	}
}

// envAliases are the bare environment variables kept for deployments that predate the prefix
var envAliases = map[string]string{
	"env":                     "ENV",
	"server.port":             "PORT",
	"database.dsn":            "DATABASE_URL",
	"encryption.key":          "ENCRYPTION_KEY",
	"cors.allowed_origins":    "CORS_ALLOWED_ORIGINS",
	"auth.credentials_json":   "FIREBASE_SERVICE_ACCOUNT_JSON",
	"auth.credentials_base64": "FIREBASE_SERVICE_ACCOUNT_BASE64",
}

// Load reads configuration from the given file, or from costconsole.yaml in the
// user config directory and the working directory, then applies environment overrides.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, GetDefaults())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("costconsole")
		v.SetConfigType("yaml")
		if configDir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(configDir, "costconsole"))
		}
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("COSTCONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envAliases {
		if err := v.BindEnv(key, "COSTCONSOLE_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that have no usable fallback
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "pgx":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Server.Port == "" {
		return errors.New("server port is required")
	}
	if !c.IsDevelopment() && c.Encryption.Key == "" {
		return errors.New("encryption key is required in production")
	}
	return nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("env", d.Env)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.read_timeout", d.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", d.Server.WriteTimeout)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.max_open_conns", d.Database.MaxOpenConns)
	v.SetDefault("database.seed", d.Database.Seed)
	v.SetDefault("auth.project_id", d.Auth.ProjectID)
	v.SetDefault("auth.credentials_json", d.Auth.CredentialsJSON)
	v.SetDefault("auth.credentials_base64", d.Auth.CredentialsBase64)
	v.SetDefault("auth.credentials_file", d.Auth.CredentialsFile)
	v.SetDefault("auth.dev_user_id", d.Auth.DevUserID)
	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.development", d.Log.Development)
	v.SetDefault("encryption.key", d.Encryption.Key)
	v.SetDefault("scheduler.summary_interval", d.Scheduler.SummaryInterval)
	v.SetDefault("jira.base_url", d.Jira.BaseURL)
	v.SetDefault("jira.issuer", d.Jira.Issuer)
	v.SetDefault("jira.shared_secret", d.Jira.SharedSecret)
	v.SetDefault("jira.timeout", d.Jira.Timeout)
}

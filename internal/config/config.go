package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Host string
		Port int
	}
	Database struct {
		Driver      string
		URL         string
		Path        string
		AutoMigrate bool
	}
	Log struct {
		Level  string
		Format string
	}
	CORS struct {
		AllowOrigins []string `mapstructure:"allow_origins"`
	}
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Load reads configuration from environment variables and an optional config
// file. When path is empty a file named config.* in the working directory is
// used if present.
func Load(path string) (Config, error) {
	// .env never overrides variables already set in the environment.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("USUARIOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "")
	v.SetDefault("database.path", "data/usuarios.db")
	v.SetDefault("database.automigrate", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("cors.allow_origins", []string{"*"})

	// PORT and DATABASE_URL apply when the prefixed names are unset.
	_ = v.BindEnv("server.port", "USUARIOS_SERVER_PORT", "PORT")
	_ = v.BindEnv("database.url", "USUARIOS_DATABASE_URL", "DATABASE_URL")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the combinations Load cannot express as defaults.
func (c Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch strings.ToLower(c.Database.Driver) {
	case "sqlite":
		if strings.TrimSpace(c.Database.Path) == "" {
			return errors.New("database path is required for sqlite")
		}
	case "postgres":
		if strings.TrimSpace(c.Database.URL) == "" {
			return errors.New("database url is required for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

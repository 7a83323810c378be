// Package config provides configuration management using viper.
// It supports loading from YAML files and environment variable overrides.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr            string        `mapstructure:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// LockTimeout bounds how long a request waits for the game lock.
	LockTimeout time.Duration `mapstructure:"lock_timeout"`
}

// GameConfig holds defaults for new games.
type GameConfig struct {
	// BoardSize overrides the layout's track length when non-zero.
	BoardSize       int    `mapstructure:"board_size"`
	DefaultPlayers  int    `mapstructure:"default_players"`
	MaxPlayers      int    `mapstructure:"max_players"`
	DefaultMaxTurns int    `mapstructure:"default_max_turns"`
	Layout          string `mapstructure:"layout"`
	FinishAtGoal    bool   `mapstructure:"finish_at_goal"`
	// Seed fixes the random source when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// DatabaseConfig holds PostgreSQL connection configuration.
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	PoolSize        int           `mapstructure:"pool_size"`
	ConnectTimeout  time.Duration `mapstructure:"connect_timeout"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		d.User, d.Password, d.Host, d.Port, d.Name,
	)
}

// Load reads configuration from file and environment variables.
// It looks for config.yaml in configPath, the working directory and ./config.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if configPath != "" {
		v.AddConfigPath(configPath)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// e.g. SERVER_ADDR, GAME_BOARD_SIZE, DATABASE_ENABLED
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would make the server unusable.
func (c *Config) Validate() error {
	if c.Game.BoardSize != 0 && c.Game.BoardSize < 2 {
		return fmt.Errorf("game.board_size must be 0 or at least 2, got %d", c.Game.BoardSize)
	}
	if c.Game.MaxPlayers < 1 {
		return fmt.Errorf("game.max_players must be positive, got %d", c.Game.MaxPlayers)
	}
	if c.Game.DefaultPlayers < 1 || c.Game.DefaultPlayers > c.Game.MaxPlayers {
		return fmt.Errorf("game.default_players must be within 1-%d, got %d", c.Game.MaxPlayers, c.Game.DefaultPlayers)
	}
	if c.Game.DefaultMaxTurns < 1 {
		return fmt.Errorf("game.default_max_turns must be positive, got %d", c.Game.DefaultMaxTurns)
	}
	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.lock_timeout", "2s")

	// Game defaults
	v.SetDefault("game.board_size", 0)
	v.SetDefault("game.default_players", 2)
	v.SetDefault("game.max_players", 8)
	v.SetDefault("game.default_max_turns", 20)
	v.SetDefault("game.layout", "classic")
	v.SetDefault("game.finish_at_goal", false)
	v.SetDefault("game.seed", 0)

	// Database defaults
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "sugoroku")
	v.SetDefault("database.name", "sugoroku")
	v.SetDefault("database.pool_size", 10)
	v.SetDefault("database.connect_timeout", "10s")
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "30m")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

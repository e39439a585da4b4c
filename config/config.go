// ABOUTME: Layered configuration: flags over FISHBONE_* env over fishbone.yaml over defaults.
// ABOUTME: .env files are loaded first without overriding variables already set.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/2389-research/fishbone/diagram"
	"github.com/2389-research/fishbone/logging"
)

// Config keys. Flag bindings use the same names.
const (
	KeyModel         = "model"
	KeyOutDir        = "out_dir"
	KeyLang          = "lang"
	KeyServerHost    = "server.host"
	KeyServerPort    = "server.port"
	KeyServerDB      = "server.db"
	KeyServerTTL     = "server.cache_ttl"
	KeyLogLevel      = "log.level"
	KeyLogFormat     = "log.format"
	DefaultPort      = 8023
	DefaultHost      = "0.0.0.0"
	DefaultOutDir    = "output"
	DefaultCacheTTL  = 5 * time.Minute
	defaultLang      = "zh"
	envPrefix        = "FISHBONE"
	configFileName   = "fishbone"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Config is the resolved process configuration.
type Config struct {
	Model  string       `mapstructure:"model"`
	OutDir string       `mapstructure:"out_dir"`
	Lang   string       `mapstructure:"lang"`
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig configures the viewer.
type ServerConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	DB       string        `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Addr is host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultModelPath returns the bundled model for a language.
func DefaultModelPath(lang string) string {
	if lang == "en" {
		return filepath.Join("resource", "model_of_level_en.json")
	}
	return filepath.Join("resource", "model_of_level.json")
}

// New returns a viper instance with defaults, env binding, and the config file
// loaded. configFile may be empty to search the working directory and ConfigDir.
func New(configFile string) (*viper.Viper, error) {
	LoadDotEnv()

	v := viper.New()
	v.SetDefault(KeyOutDir, DefaultOutDir)
	v.SetDefault(KeyLang, defaultLang)
	v.SetDefault(KeyServerHost, DefaultHost)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyServerDB, "")
	v.SetDefault(KeyServerTTL, DefaultCacheTTL)
	v.SetDefault(KeyLogLevel, defaultLogLevel)
	v.SetDefault(KeyLogFormat, defaultLogFormat)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	// model has no default, so it must be bound explicitly to be seen by Unmarshal.
	if err := v.BindEnv(KeyModel); err != nil {
		return nil, fmt.Errorf("bind env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := ConfigDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}

// Decode resolves v into a validated Config, filling the language-dependent
// model default.
func Decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Lang = strings.ToLower(strings.TrimSpace(cfg.Lang))
	if cfg.Model == "" {
		cfg.Model = DefaultModelPath(cfg.Lang)
	}
	if cfg.Server.DB == "" {
		cfg.Server.DB = DefaultDBPath()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if _, err := diagram.LocaleFor(c.Lang); err != nil {
		return err
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Server.CacheTTL <= 0 {
		return fmt.Errorf("server.cache_ttl must be positive, got %s", c.Server.CacheTTL)
	}
	if c.OutDir == "" {
		return errors.New("out_dir must not be empty")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// LoadDotEnv loads .env from the working directory and ConfigDir. Variables
// already in the environment win.
func LoadDotEnv() {
	paths := []string{".env"}
	if dir, err := ConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, ".env"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kakeibo/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the runtime configuration of the server and tools.
type Config struct {
	Port     string
	DBPath   string
	LogLevel string

	SessionSecret   string
	SessionTTL      time.Duration
	SecureCookie    bool
	CleanupInterval time.Duration
}

const envPrefix = "KAKEIBO"

// Load reads .env (if any), configs/config.yml (if any) and KAKEIBO_* env vars.
// Env wins over file, file wins over defaults.
func Load(configPaths ...string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	if len(configPaths) == 0 {
		configPaths = []string{"configs"}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:            v.GetString("port"),
		DBPath:          v.GetString("db.path"),
		LogLevel:        strings.ToLower(v.GetString("log.level")),
		SessionSecret:   v.GetString("session.secret"),
		SessionTTL:      v.GetDuration("session.ttl"),
		SecureCookie:    v.GetBool("session.secure_cookie"),
		CleanupInterval: v.GetDuration("session.cleanup_interval"),
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("db.path", "kakeibo.db")
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttl", 720*time.Hour)
	v.SetDefault("session.secure_cookie", false)
	v.SetDefault("session.cleanup_interval", 10*time.Minute)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "db.path cannot be empty")
	}
	if !logger.ValidLevel(c.LogLevel) {
		problems = append(problems, fmt.Sprintf("invalid log.level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}
	if strings.TrimSpace(c.SessionSecret) == "" {
		problems = append(problems, "session.secret is required (set KAKEIBO_SESSION_SECRET)")
	}
	if c.SessionTTL <= 0 {
		problems = append(problems, "session.ttl must be positive")
	}
	if c.CleanupInterval <= 0 {
		problems = append(problems, "session.cleanup_interval must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

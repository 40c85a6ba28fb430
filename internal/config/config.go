// Package config provides configuration loading and validation for the
// Hysteria operator bot. Values come from defaults, an optional YAML file,
// command-line flags and BOT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// ErrConfiguration is returned for any failure to load or validate the configuration.
var ErrConfiguration = errors.New("configuration error")

// Config defines the application configuration. It is built once at startup
// and treated as read-only afterwards.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	VPN       VPNConfig       `mapstructure:"vpn"`
	Host      HostConfig      `mapstructure:"host"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// TelegramConfig holds the bot token and the single operator allowed to use it.
type TelegramConfig struct {
	Token            string `mapstructure:"token"             validate:"required"`
	OperatorID       int64  `mapstructure:"operator_id"       validate:"required,gt=0"`
	StartDescription string `mapstructure:"start_description" validate:"required"`
}

// VPNConfig describes the managed Hysteria instance.
type VPNConfig struct {
	ConfigPath string `mapstructure:"config_path" validate:"required"`
	Service    string `mapstructure:"service"     validate:"required"`
	SNI        string `mapstructure:"sni"         validate:"required,hostname"`
	Port       int    `mapstructure:"port"        validate:"min=1,max=65535"`
}

// HostConfig controls how host commands and lookups are executed.
type HostConfig struct {
	IPLookupURL    string        `mapstructure:"ip_lookup_url"   validate:"required,url"`
	CommandTimeout time.Duration `mapstructure:"command_timeout" validate:"min=1s,max=10m"`
	UseSudo        bool          `mapstructure:"use_sudo"`
}

// LoggerConfig selects log verbosity and output format.
type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// SchedulerConfig lists scheduled tasks by name.
type SchedulerConfig struct {
	Tasks map[string]TaskConfig `mapstructure:"tasks" validate:"dive"`
}

// TaskConfig enables a scheduled task and sets its cron schedule.
type TaskConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true"`
}

// envBindings maps config keys to the plain environment variable names
// used by existing deployments, checked before the BOT_ prefixed form.
var envBindings = map[string][]string{
	"telegram.token":       {"BOT_TOKEN", "BOT_TELEGRAM_TOKEN"},
	"telegram.operator_id": {"ADMIN_ID", "BOT_TELEGRAM_OPERATOR_ID"},
}

// flagBindings maps config keys to command-line flag names.
var flagBindings = map[string]string{
	"logger.level": "log-level",
	"logger.json":  "log-json",
}

// LoadConfig reads the configuration in order of increasing precedence:
// defaults, the YAML file at path, environment variables, changed flags.
// A missing file is not an error. flags may be nil.
func LoadConfig(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("%w: failed to bind env for %s: %v", ErrConfiguration, key, err)
		}
	}

	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("%w: failed to bind flag %s: %v", ErrConfiguration, name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("%w: failed to read config file: %v", ErrConfiguration, err)
			}
			slog.Debug("Configuration file not found, using defaults and environment", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrConfiguration, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

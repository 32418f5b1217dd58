package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/cover42/agsctl/internal/arcgis"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Defaults applied when neither a flag, an environment variable nor the
// config file sets a value.
const (
	DefaultHost     = "localhost"
	DefaultPort     = "6080"
	DefaultInstance = "arcgis"
	DefaultScheme   = "http"
	DefaultLogLevel = "warn"
)

// EnvPrefix prefixes every environment variable the CLI reads
const EnvPrefix = "AGSCTL"

// Config holds the application configuration
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig describes the admin endpoint and the credentials used for it
type ServerConfig struct {
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Instance string        `mapstructure:"instance"`
	Scheme   string        `mapstructure:"scheme"`
	User     string        `mapstructure:"user"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// flagKeys maps command-line flag names to config keys.
var flagKeys = map[string]string{
	"server":    "server.host",
	"port":      "server.port",
	"instance":  "server.instance",
	"scheme":    "server.scheme",
	"user":      "server.user",
	"password":  "server.password",
	"timeout":   "server.timeout",
	"log-level": "log.level",
}

// Load reads configuration from the config file, environment variables and
// the given flags, in increasing order of precedence. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", DefaultHost)
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.instance", DefaultInstance)
	v.SetDefault("server.scheme", DefaultScheme)
	v.SetDefault("server.timeout", time.Duration(0))
	v.SetDefault("log.level", DefaultLogLevel)

	configFile := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".agsctl"))
		}
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Short aliases
	_ = v.BindEnv("server.host", "AGSCTL_SERVER", "AGSCTL_SERVER_HOST")
	_ = v.BindEnv("server.user", "AGSCTL_USER", "AGSCTL_SERVER_USER")
	_ = v.BindEnv("server.password", "AGSCTL_PASSWORD", "AGSCTL_SERVER_PASSWORD")
	_ = v.BindEnv("server.port", "AGSCTL_PORT", "AGSCTL_SERVER_PORT")
	_ = v.BindEnv("server.instance", "AGSCTL_INSTANCE", "AGSCTL_SERVER_INSTANCE")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Host) == "" {
		return fmt.Errorf("server is required (use --server or set AGSCTL_SERVER)")
	}
	if strings.TrimSpace(c.Server.Instance) == "" {
		return fmt.Errorf("instance is required (use --instance or set AGSCTL_INSTANCE)")
	}

	port, err := strconv.Atoi(c.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid port %q: must be a number between 1 and 65535", c.Server.Port)
	}

	switch strings.ToLower(c.Server.Scheme) {
	case "http", "https":
	default:
		return fmt.Errorf("invalid scheme %q: must be http or https", c.Server.Scheme)
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("invalid timeout %s: must not be negative", c.Server.Timeout)
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", c.Log.Level)
	}

	return nil
}

// Connection builds the connection descriptor for the configured server.
// The token is left empty.
func (c *Config) Connection() *arcgis.Connection {
	return &arcgis.Connection{
		Scheme:   strings.ToLower(c.Server.Scheme),
		Server:   c.Server.Host,
		Port:     c.Server.Port,
		Instance: c.Server.Instance,
		User:     c.Server.User,
		Password: c.Server.Password,
	}
}

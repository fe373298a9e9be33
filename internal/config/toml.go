// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Environment variables that override relay credentials from the file.
const (
	EnvRelayEndpoint   = "FOLIO_RELAY_ENDPOINT"
	EnvRelayServiceID  = "FOLIO_RELAY_SERVICE_ID"
	EnvRelayTemplateID = "FOLIO_RELAY_TEMPLATE_ID"
	EnvRelayPublicKey  = "FOLIO_RELAY_PUBLIC_KEY"
	EnvRelayPrivateKey = "FOLIO_RELAY_PRIVATE_KEY"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Relay   RelayConfig   `toml:"relay"`
	Contact ContactConfig `toml:"contact"`
	Content ContentConfig `toml:"content"`
	Log     LogConfig     `toml:"log"`
}

// RelayConfig maps mail relay credentials.
type RelayConfig struct {
	Endpoint   *string `toml:"endpoint"`
	ServiceID  *string `toml:"service-id"`
	TemplateID *string `toml:"template-id"`
	PublicKey  *string `toml:"public-key"`
	PrivateKey *string `toml:"private-key"`
}

// ContactConfig maps contact form timings.
type ContactConfig struct {
	Timeout    *Duration `toml:"timeout"`
	ResetDelay *Duration `toml:"reset-delay"`
}

// ContentConfig maps portfolio content settings.
type ContentConfig struct {
	Path  *string `toml:"path"`
	Watch *bool   `toml:"watch"`
}

// LogConfig maps logging settings.
type LogConfig struct {
	Debug *bool `toml:"debug"`
}

// Duration decodes Go duration strings such as "10s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	if parsed <= 0 {
		return fmt.Errorf("duration must be positive: %q", string(text))
	}
	d.Duration = parsed
	return nil
}

// LoadConfig reads a TOML config from the given path and applies environment
// overrides. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	var cfg FileConfig
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
		}
	} else if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *FileConfig) {
	overrideString(&cfg.Relay.Endpoint, EnvRelayEndpoint)
	overrideString(&cfg.Relay.ServiceID, EnvRelayServiceID)
	overrideString(&cfg.Relay.TemplateID, EnvRelayTemplateID)
	overrideString(&cfg.Relay.PublicKey, EnvRelayPublicKey)
	overrideString(&cfg.Relay.PrivateKey, EnvRelayPrivateKey)
}

func overrideString(target **string, env string) {
	v, ok := os.LookupEnv(env)
	if !ok {
		return
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	*target = &v
}

// StringValue dereferences an optional string.
func StringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

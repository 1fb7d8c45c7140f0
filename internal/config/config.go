// Package config handles binding configuration loading using viper.
package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/adaptivemw/someipbind/internal/core"
	"github.com/adaptivemw/someipbind/internal/event"
	"github.com/adaptivemw/someipbind/internal/identity"
	"github.com/adaptivemw/someipbind/internal/interpreter"
	"github.com/adaptivemw/someipbind/internal/log"
)

// GlobalConfig is the top-level static configuration. Maps to the
// `someipbind:` root key in YAML.
type GlobalConfig struct {
	Log     log.Config    `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Replay  ReplayConfig  `mapstructure:"replay"`
	Events  []EventConfig `mapstructure:"events"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Listen  string `mapstructure:"listen"`
	Path    string `mapstructure:"path"`
}

// ReplayConfig configures the pcap replay source used by `run`.
type ReplayConfig struct {
	Pcap string `mapstructure:"pcap"`
}

// EventConfig describes one deployed event.
type EventConfig struct {
	Name string `mapstructure:"name"`

	// Identity, written as hex or decimal strings ("0x1234" or "4660").
	Service  string `mapstructure:"service"`
	Instance string `mapstructure:"instance"`
	Event    string `mapstructure:"event"`

	// Variant: someip | signal | someip-e2e | signal-e2e | signal-e2e-legacy.
	Variant string `mapstructure:"variant"`

	// UDPPort routes replayed transport frames to this event.
	UDPPort uint16 `mapstructure:"udp_port"`

	QueueDepth int `mapstructure:"queue_depth"`
	MaxSamples int `mapstructure:"max_samples"`

	E2E    E2ESection    `mapstructure:"e2e"`
	Layout LayoutSection `mapstructure:"layout"`
}

// E2ESection holds the per-event E2E deployment switches.
type E2ESection struct {
	CheckDisabled bool `mapstructure:"check_disabled"`
}

// LayoutSection is the signal-based wire geometry of an event.
type LayoutSection struct {
	ExtensionSize       int  `mapstructure:"extension_size"`
	PayloadOffset       int  `mapstructure:"payload_offset"`
	ProtectedOffset     int  `mapstructure:"protected_offset"`
	ProtectedLengthBits int  `mapstructure:"protected_length_bits"`
	UpdateBit           *int `mapstructure:"update_bit"`
}

// Load loads configuration from file. The YAML file uses `someipbind:` as
// root key; env vars use SOMEIPBIND_ prefix via the key replacer (e.g., key
// "someipbind.log.level" → env "SOMEIPBIND_LOG_LEVEL").
func Load(path string) (*GlobalConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	var root struct {
		SomeIpBind GlobalConfig `mapstructure:"someipbind"`
	}
	if err := v.Unmarshal(&root); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg := root.SomeIpBind

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets default values. All keys use the "someipbind." prefix to
// match the YAML root wrapper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("someipbind.log.level", "info")
	v.SetDefault("someipbind.log.format", "text")
	v.SetDefault("someipbind.log.file.enabled", false)
	v.SetDefault("someipbind.log.file.max_size_mb", 100)
	v.SetDefault("someipbind.log.file.max_age_days", 30)
	v.SetDefault("someipbind.log.file.max_backups", 5)

	v.SetDefault("someipbind.metrics.enabled", false)
	v.SetDefault("someipbind.metrics.listen", ":9123")
	v.SetDefault("someipbind.metrics.path", "/metrics")
}

// Validate checks cross-field consistency and applies per-event defaults.
func (cfg *GlobalConfig) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Log.Level] {
		return fmt.Errorf("%w: invalid log level %q", core.ErrConfigInvalid, cfg.Log.Level)
	}

	seen := map[string]bool{}
	for i := range cfg.Events {
		ev := &cfg.Events[i]
		if ev.Name == "" {
			return fmt.Errorf("%w: event %d has no name", core.ErrConfigInvalid, i)
		}
		if seen[ev.Name] {
			return fmt.Errorf("%w: duplicate event name %q", core.ErrConfigInvalid, ev.Name)
		}
		seen[ev.Name] = true

		if ev.QueueDepth == 0 {
			ev.QueueDepth = 32
		}
		if ev.MaxSamples == 0 {
			ev.MaxSamples = 8
		}
		bcfg, err := ev.BindingConfig()
		if err != nil {
			return err
		}
		// event.New owns the variant/layout rules; build and discard.
		if _, err := event.New(bcfg); err != nil {
			return fmt.Errorf("event %q: %w", ev.Name, err)
		}
	}
	return nil
}

// Identity parses the event's identity strings.
func (ev *EventConfig) Identity() (identity.Entity, error) {
	parse := func(field, s string) (uint16, error) {
		n, err := strconv.ParseUint(s, 0, 16)
		if err != nil {
			return 0, fmt.Errorf("%w: event %q has invalid %s %q", core.ErrConfigInvalid, ev.Name, field, s)
		}
		return uint16(n), nil
	}
	svc, err := parse("service", ev.Service)
	if err != nil {
		return identity.Entity{}, err
	}
	inst, err := parse("instance", ev.Instance)
	if err != nil {
		return identity.Entity{}, err
	}
	evt, err := parse("event", ev.Event)
	if err != nil {
		return identity.Entity{}, err
	}
	return identity.Entity{ServiceID: svc, InstanceID: inst, EventID: evt}, nil
}

// BindingConfig translates the event section into an event.Config. Checker
// and deserializer stay at their defaults; callers supply real ones when the
// deployment has them.
func (ev *EventConfig) BindingConfig() (event.Config, error) {
	ident, err := ev.Identity()
	if err != nil {
		return event.Config{}, err
	}
	return event.Config{
		Identity: ident,
		Variant:  event.Variant(ev.Variant),
		Layout: interpreter.SignalLayout{
			ExtensionSize:       ev.Layout.ExtensionSize,
			PayloadOffset:       ev.Layout.PayloadOffset,
			ProtectedOffset:     ev.Layout.ProtectedOffset,
			ProtectedLengthBits: ev.Layout.ProtectedLengthBits,
			UpdateBit:           ev.Layout.UpdateBit,
		},
		CheckDisabled: ev.E2E.CheckDisabled,
		QueueDepth:    ev.QueueDepth,
	}, nil
}

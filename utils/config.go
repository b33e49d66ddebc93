// File: utils/config.go
package utils

import (
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds all configurable exchange parameters.
type Config struct {
	// Termination
	Threshold int // Round trips before a player stops

	// Timing
	ReplyDelay      time.Duration // Pause after each reply
	ShutdownTimeout time.Duration // How long main waits for actors after cancellation

	// Messages & Players
	SeedMessage   string // Unsolicited first message sent by the initiator
	InitiatorName string // Log/transcript name of the initiator
	ResponderName string // Log/transcript name of the responder
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig() Config {
	return Config{
		Threshold: MessageThreshold,

		ReplyDelay:      ReplyDelay,
		ShutdownTimeout: ShutdownTimeout,

		SeedMessage:   SeedMessage,
		InitiatorName: InitiatorName,
		ResponderName: ResponderName,
	}
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Threshold < 1 {
		return errors.Errorf("threshold must be at least 1, got %d", c.Threshold)
	}
	if c.ReplyDelay < 0 {
		return errors.Errorf("reply delay must not be negative, got %s", c.ReplyDelay)
	}
	if c.ShutdownTimeout < 0 {
		return errors.Errorf("shutdown timeout must not be negative, got %s", c.ShutdownTimeout)
	}
	if strings.TrimSpace(c.InitiatorName) == "" || strings.TrimSpace(c.ResponderName) == "" {
		return errors.New("player names must not be empty")
	}
	if c.InitiatorName == c.ResponderName {
		return errors.Errorf("player names must differ, both are %q", c.InitiatorName)
	}
	return nil
}

type fileConfig struct {
	Threshold       int    `toml:"threshold"`
	ReplyDelay      string `toml:"reply_delay"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	SeedMessage     string `toml:"seed_message"`
	InitiatorName   string `toml:"initiator_name"`
	ResponderName   string `toml:"responder_name"`
}

// LoadConfig reads a TOML file and overlays the keys it defines on top of
// DefaultConfig. The result is validated.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, errors.Wrap(err, "load config")
	}

	if meta.IsDefined("threshold") {
		cfg.Threshold = raw.Threshold
	}

	if meta.IsDefined("reply_delay") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReplyDelay))
		if err != nil {
			return Config{}, errors.Wrap(err, "parse reply_delay")
		}
		cfg.ReplyDelay = d
	}

	if meta.IsDefined("shutdown_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ShutdownTimeout))
		if err != nil {
			return Config{}, errors.Wrap(err, "parse shutdown_timeout")
		}
		cfg.ShutdownTimeout = d
	}

	if meta.IsDefined("seed_message") {
		cfg.SeedMessage = raw.SeedMessage
	}

	if meta.IsDefined("initiator_name") {
		cfg.InitiatorName = strings.TrimSpace(raw.InitiatorName)
	}

	if meta.IsDefined("responder_name") {
		cfg.ResponderName = strings.TrimSpace(raw.ResponderName)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("unknown config keys: %v", undecoded)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
)

type Config struct {
	TickInterval string           `json:"tick_interval"`
	Listeners    []ListenerConfig `json:"listeners"`
	Storage      StorageConfig    `json:"storage"`
	Nats         NatsConfig       `json:"nats"`
	Sessions     SessionConfig    `json:"sessions"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	if c.TickInterval != "" {
		d, err := time.ParseDuration(c.TickInterval)
		if err != nil {
			el.Add(fmt.Errorf("parsing tick_interval: %w", err))
		} else if d < time.Second {
			el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
		}
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}

	for i, l := range c.Listeners {
		err := l.Validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Storage.Validate())
	el.Add(c.Nats.Validate())
	el.Add(c.Sessions.Validate())

	return el.Err()
}

// tickLength returns the configured heartbeat period, defaulting to 1s.
func (c *Config) tickLength() time.Duration {
	if c.TickInterval == "" {
		return time.Second
	}

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		return time.Second
	}

	return d
}

type SessionConfig struct {
	MaxConnections int `json:"max_connections"`
}

func (c *SessionConfig) Validate() error {
	el := errors.NewErrorList()

	if c.MaxConnections < 0 {
		el.Add(fmt.Errorf("max_connections must not be negative"))
	}

	return el.Err()
}

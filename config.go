package memsim

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/viant/afs"
	"github.com/viant/memsim/service/meta"
)

// Config is a serialisable representation of the simulator configuration. It
// can be populated from JSON, YAML, TOML and MEMSIM_* environment variables.
type Config struct {
	Pool    PoolConfig    `json:"pool" yaml:"pool" toml:"pool"`
	Runner  RunnerConfig  `json:"runner" yaml:"runner" toml:"runner"`
	Events  EventsConfig  `json:"events" yaml:"events" toml:"events"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing" toml:"tracing"`
}

type PoolConfig struct {
	CapacityMB int `json:"capacityMB" yaml:"capacityMB" toml:"capacityMB"`
	// HostFraction, when > 0, sizes the pool as a fraction of host memory
	HostFraction       float64 `json:"hostFraction" yaml:"hostFraction" toml:"hostFraction"`
	RejectOversized    bool    `json:"rejectOversized" yaml:"rejectOversized" toml:"rejectOversized"`
	ReleaseOnInterrupt bool    `json:"releaseOnInterrupt" yaml:"releaseOnInterrupt" toml:"releaseOnInterrupt"`
}

type RunnerConfig struct {
	// TimeUnit is the wall-clock length of one simulated second, e.g. "1s" or "10ms"
	TimeUnit string `json:"timeUnit" yaml:"timeUnit" toml:"timeUnit"`
}

type EventsConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" toml:"enabled"`
	Buffer  int  `json:"buffer" yaml:"buffer" toml:"buffer"`
}

type TracingConfig struct {
	Enabled     bool   `json:"enabled" yaml:"enabled" toml:"enabled"`
	ServiceName string `json:"serviceName" yaml:"serviceName" toml:"serviceName"`
	OutputFile  string `json:"outputFile" yaml:"outputFile" toml:"outputFile"`
}

// DefaultConfig returns a Config populated with the simulator defaults.
// Callers may modify the returned struct before passing it to New.
func DefaultConfig() *Config {
	return &Config{
		Pool: PoolConfig{
			CapacityMB:         1024,
			RejectOversized:    true,
			ReleaseOnInterrupt: true,
		},
		Runner:  RunnerConfig{TimeUnit: "1s"},
		Events:  EventsConfig{Enabled: true, Buffer: 100},
		Tracing: TracingConfig{ServiceName: "memsim"},
	}
}

// Validate returns an error describing the first invalid setting or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Pool.HostFraction < 0 || c.Pool.HostFraction > 1 {
		return fmt.Errorf("pool.hostFraction must be within [0,1], got %v", c.Pool.HostFraction)
	}
	if c.Pool.HostFraction == 0 && c.Pool.CapacityMB <= 0 {
		return fmt.Errorf("pool.capacityMB must be > 0")
	}
	if _, err := c.TimeUnit(); err != nil {
		return err
	}
	if c.Events.Buffer < 0 {
		return fmt.Errorf("events.buffer must be >= 0")
	}
	return nil
}

// TimeUnit parses Runner.TimeUnit; an empty value means one second.
func (c *Config) TimeUnit() (time.Duration, error) {
	if c.Runner.TimeUnit == "" {
		return time.Second, nil
	}
	unit, err := time.ParseDuration(c.Runner.TimeUnit)
	if err != nil {
		return 0, fmt.Errorf("invalid runner.timeUnit %q: %w", c.Runner.TimeUnit, err)
	}
	if unit <= 0 {
		return 0, fmt.Errorf("runner.timeUnit must be > 0, got %v", unit)
	}
	return unit, nil
}

// LoadConfig reads the configuration from any afs supported URL and decodes
// it on top of DefaultConfig according to the URL extension. ${env.KEY}
// expressions in the document are expanded first.
func LoadConfig(ctx context.Context, URL string) (*Config, error) {
	cfg := DefaultConfig()
	if err := meta.New(afs.New(), "").Load(ctx, URL, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv loads the supplied dotenv files (".env" when none is given and it
// exists) and overlays MEMSIM_* variables on cfg.
func ApplyEnv(cfg *Config, envFiles ...string) error {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			return fmt.Errorf("failed to load env files %v: %w", envFiles, err)
		}
	} else if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: failed to load .env: %v", err)
	}
	var err error
	setInt := func(key string, dest *int) {
		if value, ok := os.LookupEnv(key); ok && err == nil {
			parsed, parseErr := strconv.Atoi(value)
			if parseErr != nil {
				err = fmt.Errorf("invalid %v: %w", key, parseErr)
				return
			}
			*dest = parsed
		}
	}
	setFloat := func(key string, dest *float64) {
		if value, ok := os.LookupEnv(key); ok && err == nil {
			parsed, parseErr := strconv.ParseFloat(value, 64)
			if parseErr != nil {
				err = fmt.Errorf("invalid %v: %w", key, parseErr)
				return
			}
			*dest = parsed
		}
	}
	setBool := func(key string, dest *bool) {
		if value, ok := os.LookupEnv(key); ok && err == nil {
			parsed, parseErr := strconv.ParseBool(value)
			if parseErr != nil {
				err = fmt.Errorf("invalid %v: %w", key, parseErr)
				return
			}
			*dest = parsed
		}
	}
	setString := func(key string, dest *string) {
		if value, ok := os.LookupEnv(key); ok && err == nil {
			*dest = value
		}
	}
	setInt("MEMSIM_CAPACITY_MB", &cfg.Pool.CapacityMB)
	setFloat("MEMSIM_HOST_FRACTION", &cfg.Pool.HostFraction)
	setBool("MEMSIM_REJECT_OVERSIZED", &cfg.Pool.RejectOversized)
	setBool("MEMSIM_RELEASE_ON_INTERRUPT", &cfg.Pool.ReleaseOnInterrupt)
	setString("MEMSIM_TIME_UNIT", &cfg.Runner.TimeUnit)
	setBool("MEMSIM_EVENTS_ENABLED", &cfg.Events.Enabled)
	setInt("MEMSIM_EVENTS_BUFFER", &cfg.Events.Buffer)
	setBool("MEMSIM_TRACING_ENABLED", &cfg.Tracing.Enabled)
	setString("MEMSIM_TRACING_OUTPUT", &cfg.Tracing.OutputFile)
	if err != nil {
		return err
	}
	return cfg.Validate()
}

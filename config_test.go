package memsim_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/memsim"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		mutate    func(c *memsim.Config)
		expectErr bool
	}{
		{name: "default", mutate: func(c *memsim.Config) {}},
		{name: "zero capacity", mutate: func(c *memsim.Config) { c.Pool.CapacityMB = 0 }, expectErr: true},
		{name: "zero capacity with host fraction", mutate: func(c *memsim.Config) { c.Pool.CapacityMB = 0; c.Pool.HostFraction = 0.5 }},
		{name: "host fraction above one", mutate: func(c *memsim.Config) { c.Pool.HostFraction = 1.5 }, expectErr: true},
		{name: "bad time unit", mutate: func(c *memsim.Config) { c.Runner.TimeUnit = "soon" }, expectErr: true},
		{name: "negative time unit", mutate: func(c *memsim.Config) { c.Runner.TimeUnit = "-1s" }, expectErr: true},
		{name: "negative buffer", mutate: func(c *memsim.Config) { c.Events.Buffer = -1 }, expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := memsim.DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	testCases := []struct {
		name      string
		file      string
		content   string
		expectErr bool
	}{
		{
			name: "yaml",
			file: "memsim.yaml",
			content: `pool:
  capacityMB: 2048
  releaseOnInterrupt: false
runner:
  timeUnit: 10ms
`,
		},
		{
			name: "toml",
			file: "memsim.toml",
			content: `[pool]
capacityMB = 2048
releaseOnInterrupt = false

[runner]
timeUnit = "10ms"
`,
		},
		{
			name:    "json",
			file:    "memsim.json",
			content: `{"pool":{"capacityMB":2048,"releaseOnInterrupt":false},"runner":{"timeUnit":"10ms"}}`,
		},
		{name: "unsupported", file: "memsim.ini", content: "capacity=1", expectErr: true},
		{name: "invalid", file: "broken.yaml", content: "runner:\n  timeUnit: never\n", expectErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			location := filepath.Join(dir, tc.file)
			require.NoError(t, os.WriteFile(location, []byte(tc.content), 0o644))
			cfg, err := memsim.LoadConfig(context.Background(), location)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2048, cfg.Pool.CapacityMB)
			assert.False(t, cfg.Pool.ReleaseOnInterrupt)
			assert.True(t, cfg.Pool.RejectOversized, "unset fields keep defaults")
			assert.Equal(t, 100, cfg.Events.Buffer)
			unit, err := cfg.TimeUnit()
			require.NoError(t, err)
			assert.Equal(t, 10*time.Millisecond, unit)
		})
	}

	_, err := memsim.LoadConfig(context.Background(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("MEMSIM_CAPACITY_MB", "512")
	t.Setenv("MEMSIM_REJECT_OVERSIZED", "false")
	t.Setenv("MEMSIM_TIME_UNIT", "1ms")

	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("MEMSIM_EVENTS_BUFFER=7\nMEMSIM_CAPACITY_MB=64\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("MEMSIM_EVENTS_BUFFER") })

	cfg := memsim.DefaultConfig()
	require.NoError(t, memsim.ApplyEnv(cfg, envFile))
	assert.Equal(t, 512, cfg.Pool.CapacityMB, "existing variables win over the env file")
	assert.False(t, cfg.Pool.RejectOversized)
	assert.Equal(t, "1ms", cfg.Runner.TimeUnit)
	assert.Equal(t, 7, cfg.Events.Buffer)

	t.Setenv("MEMSIM_RELEASE_ON_INTERRUPT", "maybe")
	assert.Error(t, memsim.ApplyEnv(memsim.DefaultConfig()))
}

func TestApplyEnv_KeepsFirstError(t *testing.T) {
	t.Setenv("MEMSIM_CAPACITY_MB", "lots")
	t.Setenv("MEMSIM_HOST_FRACTION", "0.5")

	cfg := memsim.DefaultConfig()
	err := memsim.ApplyEnv(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MEMSIM_CAPACITY_MB")
	assert.Equal(t, 1024, cfg.Pool.CapacityMB)
	assert.Equal(t, 0.0, cfg.Pool.HostFraction)
}

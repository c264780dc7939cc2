package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, -59.0, cfg.Estimator.ReferencePower)
	assert.Equal(t, 2.0, cfg.Estimator.PathLossExponent)
	assert.Equal(t, 10.0, cfg.Estimator.MaxDistance)
	assert.Equal(t, 15.0, cfg.Radar.IconBuffer)
	assert.Equal(t, 100.0, cfg.Radar.AngleSensitivity)
	assert.Equal(t, 100*time.Millisecond, cfg.Gyro.Interval)
	assert.Equal(t, GyroSourceMock, cfg.Gyro.Source)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("/nonexistent/path.yaml")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 150.0, cfg.Radar.ViewportRadius)
	assert.Equal(t, "hci0", cfg.Scanner.Adapter)
}

func TestLoad_WithFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	content := `
estimator:
  reference_power: -65
  path_loss_exponent: 2.5
radar:
  viewport_radius: 200
  angle_sensitivity: 50
gyro:
  source: none
  interval: 250ms
logging:
  level: debug
  format: json
  file: /tmp/bluewave.log
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, -65.0, cfg.Estimator.ReferencePower)
	assert.Equal(t, 2.5, cfg.Estimator.PathLossExponent)
	assert.Equal(t, 10.0, cfg.Estimator.MaxDistance, "unset keys keep defaults")
	assert.Equal(t, 200.0, cfg.Radar.ViewportRadius)
	assert.Equal(t, 15.0, cfg.Radar.IconBuffer)
	assert.Equal(t, 50.0, cfg.Radar.AngleSensitivity)
	assert.Equal(t, GyroSourceNone, cfg.Gyro.Source)
	assert.Equal(t, 250*time.Millisecond, cfg.Gyro.Interval)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/bluewave.log", cfg.Logging.File)
}

func TestLoad_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("radar: [unterminated"), 0644))

	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("BLUEWAVE_RADAR_ICON_BUFFER", "20")
	t.Setenv("BLUEWAVE_GYRO_SOURCE", "mpu9250")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 20.0, cfg.Radar.IconBuffer)
	assert.Equal(t, GyroSourceMPU9250, cfg.Gyro.Source)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"zero max distance", func(c *Config) { c.Estimator.MaxDistance = 0 }, true},
		{"zero path loss", func(c *Config) { c.Estimator.PathLossExponent = 0 }, true},
		{"negative radius", func(c *Config) { c.Radar.ViewportRadius = -1 }, true},
		{"negative icon buffer", func(c *Config) { c.Radar.IconBuffer = -1 }, true},
		{"zero icon buffer", func(c *Config) { c.Radar.IconBuffer = 0 }, false},
		{"zero interval", func(c *Config) { c.Gyro.Interval = 0 }, true},
		{"unknown source", func(c *Config) { c.Gyro.Source = "compass" }, true},
		{"gyro range too high", func(c *Config) { c.Gyro.GyroRange = 4 }, true},
		{"zero sensitivity", func(c *Config) { c.Radar.AngleSensitivity = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Gyroscope source names accepted by GyroConfig.Source.
const (
	GyroSourceMock    = "mock"
	GyroSourceMPU9250 = "mpu9250"
	GyroSourceNone    = "none"
)

// Config is the root runtime configuration.
type Config struct {
	Estimator EstimatorConfig `mapstructure:"estimator"`
	Radar     RadarConfig     `mapstructure:"radar"`
	Gyro      GyroConfig      `mapstructure:"gyro"`
	Scanner   ScannerConfig   `mapstructure:"scanner"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// EstimatorConfig configures RSSI to distance conversion.
type EstimatorConfig struct {
	ReferencePower   float64 `mapstructure:"reference_power"`    // RSSI at 1 meter
	PathLossExponent float64 `mapstructure:"path_loss_exponent"` // n in the log-distance model
	MaxDistance      float64 `mapstructure:"max_distance"`       // hard cap, meters
}

// RadarConfig configures the viewport the resolver places devices in.
type RadarConfig struct {
	ViewportRadius   float64 `mapstructure:"viewport_radius"`
	IconBuffer       float64 `mapstructure:"icon_buffer"`
	AngleSensitivity float64 `mapstructure:"angle_sensitivity"`
}

// GyroConfig selects and configures the orientation source.
type GyroConfig struct {
	Source    string        `mapstructure:"source"` // mock, mpu9250, none
	Interval  time.Duration `mapstructure:"interval"`
	SPIDevice string        `mapstructure:"spi_device"`
	CSPin     string        `mapstructure:"cs_pin"`
	GyroRange byte          `mapstructure:"gyro_range"` // 0=±250°/s .. 3=±2000°/s
}

// ScannerConfig configures device discovery.
type ScannerConfig struct {
	Demo    bool   `mapstructure:"demo"`
	Adapter string `mapstructure:"adapter"` // BlueZ adapter id, Linux only; empty means hci0
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
	File   string `mapstructure:"file"`   // empty discards
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Estimator: EstimatorConfig{
			ReferencePower:   -59,
			PathLossExponent: 2,
			MaxDistance:      10,
		},
		Radar: RadarConfig{
			ViewportRadius:   150,
			IconBuffer:       15,
			AngleSensitivity: 100,
		},
		Gyro: GyroConfig{
			Source:    GyroSourceMock,
			Interval:  100 * time.Millisecond,
			SPIDevice: "/dev/spidev0.0",
			CSPin:     "8",
			GyroRange: 0,
		},
		Scanner: ScannerConfig{
			Adapter: "hci0",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from an optional YAML file and BLUEWAVE_*
// environment variables on top of the defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		// A missing file is fine, defaults apply.
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("failed to read config %s: %w", path, err)
			}
		}
	}

	v.SetEnvPrefix("BLUEWAVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("estimator.reference_power", d.Estimator.ReferencePower)
	v.SetDefault("estimator.path_loss_exponent", d.Estimator.PathLossExponent)
	v.SetDefault("estimator.max_distance", d.Estimator.MaxDistance)

	v.SetDefault("radar.viewport_radius", d.Radar.ViewportRadius)
	v.SetDefault("radar.icon_buffer", d.Radar.IconBuffer)
	v.SetDefault("radar.angle_sensitivity", d.Radar.AngleSensitivity)

	v.SetDefault("gyro.source", d.Gyro.Source)
	v.SetDefault("gyro.interval", d.Gyro.Interval.String())
	v.SetDefault("gyro.spi_device", d.Gyro.SPIDevice)
	v.SetDefault("gyro.cs_pin", d.Gyro.CSPin)
	v.SetDefault("gyro.gyro_range", d.Gyro.GyroRange)

	v.SetDefault("scanner.demo", d.Scanner.Demo)
	v.SetDefault("scanner.adapter", d.Scanner.Adapter)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.file", d.Logging.File)
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Estimator.MaxDistance <= 0 {
		return fmt.Errorf("max_distance must be positive, got %f", c.Estimator.MaxDistance)
	}
	if c.Estimator.PathLossExponent <= 0 {
		return fmt.Errorf("path_loss_exponent must be positive, got %f", c.Estimator.PathLossExponent)
	}
	if c.Radar.ViewportRadius <= 0 {
		return fmt.Errorf("viewport_radius must be positive, got %f", c.Radar.ViewportRadius)
	}
	if c.Radar.IconBuffer < 0 {
		return fmt.Errorf("icon_buffer must not be negative, got %f", c.Radar.IconBuffer)
	}
	if c.Gyro.Interval <= 0 {
		return fmt.Errorf("gyro interval must be positive, got %s", c.Gyro.Interval)
	}
	switch c.Gyro.Source {
	case GyroSourceMock, GyroSourceMPU9250, GyroSourceNone:
	default:
		return fmt.Errorf("unknown gyro source %q", c.Gyro.Source)
	}
	if c.Gyro.GyroRange > 3 {
		return fmt.Errorf("gyro_range must be between 0 and 3, got %d", c.Gyro.GyroRange)
	}
	return nil
}

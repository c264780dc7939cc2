package main

import (
	"fmt"
	"os"

	"bluewave-radar.klederson.com/internal/app"
	"bluewave-radar.klederson.com/internal/config"
	"bluewave-radar.klederson.com/internal/gyro"
	"bluewave-radar.klederson.com/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	flagConfig   string
	flagDemo     bool
	flagAdapter  string
	flagGyro     string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bluewave-radar",
		Short: "Bluewave Radar - BLE proximity radar with gyroscope bearing",
		Long: `Bluewave Radar listens for Bluetooth Low Energy advertisements, estimates
each device's distance from its signal strength and places it on a circular
ASCII radar. Turning the device rotates the blips using the gyroscope.

Requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use --demo flag for demonstration mode without Bluetooth hardware.`,
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVarP(&flagConfig, "config", "c", "", "Path to a YAML config file")
	rootCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run in demo mode with fake devices (no Bluetooth required)")
	rootCmd.Flags().StringVar(&flagAdapter, "adapter", "", "Bluetooth adapter to use, e.g. hci1 (Linux only)")
	rootCmd.Flags().StringVar(&flagGyro, "gyro", "", "Gyroscope source: mock, mpu9250 or none")
	rootCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.Flags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	src, err := openGyro(cfg.Gyro, logger)
	if err != nil {
		return err
	}

	model := app.New(app.Options{Config: cfg, Logger: logger, Gyro: src})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS),
	)

	// Start scanners with reference to the tea program
	if err := model.StartScanners(p); err != nil {
		if src != nil {
			_ = src.Close()
		}
		fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
		fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
		fmt.Fprintln(os.Stderr, "Try one of:")
		fmt.Fprintln(os.Stderr, "  sudo ./bluewave-radar")
		fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./bluewave-radar")
		fmt.Fprintln(os.Stderr, "  ./bluewave-radar --demo    (demo mode, no hardware needed)")
		return err
	}
	defer model.StopScanners()

	logger.WithFields(logrus.Fields{
		"demo":    cfg.Scanner.Demo,
		"adapter": cfg.Scanner.Adapter,
		"gyro":    cfg.Gyro.Source,
	}).Info("radar started")

	_, err = p.Run()
	return err
}

// applyFlags lets explicitly set flags win over file and environment values.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("demo") {
		cfg.Scanner.Demo = flagDemo
	}
	if flags.Changed("adapter") {
		cfg.Scanner.Adapter = flagAdapter
	}
	if flags.Changed("gyro") {
		cfg.Gyro.Source = flagGyro
	}
	if flags.Changed("log-file") {
		cfg.Logging.File = flagLogFile
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
}

// openGyro returns nil when the gyroscope is disabled.
func openGyro(cfg config.GyroConfig, logger logrus.FieldLogger) (gyro.Source, error) {
	switch cfg.Source {
	case config.GyroSourceNone:
		return nil, nil
	case config.GyroSourceMPU9250:
		src, err := gyro.NewMPU9250Source(cfg.SPIDevice, cfg.CSPin, cfg.GyroRange)
		if err != nil {
			return nil, fmt.Errorf("gyro: %w", err)
		}
		logger.WithField("spi", cfg.SPIDevice).Info("MPU9250 ready")
		return src, nil
	default:
		return gyro.NewMockSource(), nil
	}
}

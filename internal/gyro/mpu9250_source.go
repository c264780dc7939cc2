package gyro

import (
	"fmt"
	"math"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/devices/v3/mpu9250"
	"periph.io/x/host/v3"
)

// LSB per °/s for each MPU9250 full-scale gyro range (0=±250 .. 3=±2000).
var gyroSensitivity = [...]float64{131.0, 65.5, 32.8, 16.4}

// MPU9250Source reads angular rate from an MPU9250 on SPI.
type MPU9250Source struct {
	imu   *mpu9250.MPU9250
	scale float64 // raw count -> rad/s
}

// NewMPU9250Source initializes the IMU on spiDev with chip select csPin.
// gyroRange selects the full-scale range, 0 through 3.
func NewMPU9250Source(spiDev, csPin string, gyroRange byte) (*MPU9250Source, error) {
	if int(gyroRange) >= len(gyroSensitivity) {
		return nil, fmt.Errorf("mpu9250: invalid gyro range %d", gyroRange)
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("mpu9250: periph host init: %w", err)
	}

	cs := gpioreg.ByName(csPin)
	if cs == nil {
		return nil, fmt.Errorf("mpu9250: CS pin %q not found", csPin)
	}

	tr, err := mpu9250.NewSpiTransport(spiDev, cs)
	if err != nil {
		return nil, fmt.Errorf("mpu9250: SPI transport (%s): %w", spiDev, err)
	}

	imu, err := mpu9250.New(tr)
	if err != nil {
		return nil, fmt.Errorf("mpu9250: device creation: %w", err)
	}
	if err := imu.Init(); err != nil {
		return nil, fmt.Errorf("mpu9250: initialization: %w", err)
	}
	if err := imu.SetGyroRange(gyroRange); err != nil {
		return nil, fmt.Errorf("mpu9250: set gyro range: %w", err)
	}
	if err := imu.Calibrate(); err != nil {
		return nil, fmt.Errorf("mpu9250: calibrate: %w", err)
	}

	return &MPU9250Source{
		imu:   imu,
		scale: rawToRadPerSec(gyroRange),
	}, nil
}

func rawToRadPerSec(gyroRange byte) float64 {
	return math.Pi / 180 / gyroSensitivity[gyroRange]
}

// Next reads the three gyro axes and converts them to rad/s.
func (s *MPU9250Source) Next() (Sample, error) {
	gx, err := s.imu.GetRotationX()
	if err != nil {
		return Sample{}, fmt.Errorf("mpu9250 gyro X: %w", err)
	}
	gy, err := s.imu.GetRotationY()
	if err != nil {
		return Sample{}, fmt.Errorf("mpu9250 gyro Y: %w", err)
	}
	gz, err := s.imu.GetRotationZ()
	if err != nil {
		return Sample{}, fmt.Errorf("mpu9250 gyro Z: %w", err)
	}

	return Sample{
		X: float64(gx) * s.scale,
		Y: float64(gy) * s.scale,
		Z: float64(gz) * s.scale,
	}, nil
}

func (s *MPU9250Source) Name() string { return "mpu9250" }

func (s *MPU9250Source) Close() error { return nil }

// Package config provides configuration helpers for go-waypath commands.
package config

import "os"

// Default device configuration.
const (
	DefaultDashboardPort = "8090"
	DefaultBandPort      = "9151"
	DefaultSensorURL     = "ws://127.0.0.1:8765/depth"
	DefaultSynthURL      = "http://127.0.0.1:5002"
)

// DashboardPort returns the dashboard port from WAYPATH_PORT env var.
// Falls back to the default if not set.
func DashboardPort() string {
	if port := os.Getenv("WAYPATH_PORT"); port != "" {
		return port
	}
	return DefaultDashboardPort
}

// SensorURL returns the depth sensor websocket URL from SENSOR_URL env var.
// Falls back to the provided default if not set.
func SensorURL(defaultURL string) string {
	if url := os.Getenv("SENSOR_URL"); url != "" {
		return url
	}
	if defaultURL != "" {
		return defaultURL
	}
	return DefaultSensorURL
}

// BandAddr returns the haptic wristband address from BAND_ADDR env var.
// Empty means no wristband is attached.
func BandAddr() string {
	return os.Getenv("BAND_ADDR")
}

// SynthURL returns the speech synthesizer base URL from SYNTH_URL env var.
func SynthURL() string {
	if url := os.Getenv("SYNTH_URL"); url != "" {
		return url
	}
	return DefaultSynthURL
}

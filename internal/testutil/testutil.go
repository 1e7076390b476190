//go:build integration

// Package testutil provides helpers for integration tests that talk to a
// real CzechLight ROADM device.
package testutil

import (
	"os"
	"strconv"
	"testing"

	"github.com/roadm-network/roadmctl/pkg/spec"
)

// DeviceFromEnv builds a device record from the ROADM_TEST_* environment:
// ROADM_TEST_HOST (required), ROADM_TEST_USER, ROADM_TEST_PASSWORD and
// ROADM_TEST_PORT. Returns false when no test device is configured.
func DeviceFromEnv() (spec.Device, bool) {
	host := os.Getenv("ROADM_TEST_HOST")
	if host == "" {
		return spec.Device{}, false
	}

	d := spec.Device{
		Name:      "roadm-test",
		IPAddress: host,
		Username:  envOr("ROADM_TEST_USER", "admin"),
		Password:  os.Getenv("ROADM_TEST_PASSWORD"),
		Mode:      spec.ModeMerge,
		Validate:  true,
	}
	if port := os.Getenv("ROADM_TEST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			d.Port = p
		}
	}
	return d, true
}

// SkipIfNoROADM skips the test unless a test device is configured, and
// returns the device record when one is.
func SkipIfNoROADM(t *testing.T) spec.Device {
	t.Helper()
	d, ok := DeviceFromEnv()
	if !ok {
		t.Skip("ROADM_TEST_HOST not set, skipping device integration test")
	}
	return d
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

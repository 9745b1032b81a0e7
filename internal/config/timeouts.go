package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the environment-tunable timing knobs.
type Timeouts struct {
	ConnectMaxAttempts int           // connection retry budget
	ConnectRetryDelay  time.Duration // fixed wait between connect attempts
	TaskTimeout        time.Duration // per vCenter task
}

// LoadTimeouts loads timing configuration from environment variables.
// Unset or invalid values fall back to defaults.
//
// Environment Variables:
//   - VSPHERE_CONNECT_MAX_ATTEMPTS (default: 30)
//   - VSPHERE_CONNECT_RETRY_DELAY (default: 10s)
//   - VSPHERE_TASK_TIMEOUT (default: 5m)
//
// The connect defaults give a freshly booting vCenter appliance about
// five minutes to come up before the run is declared dead.
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		ConnectMaxAttempts: parseInt("VSPHERE_CONNECT_MAX_ATTEMPTS", 30),
		ConnectRetryDelay:  parseDuration("VSPHERE_CONNECT_RETRY_DELAY", 10*time.Second),
		TaskTimeout:        parseDuration("VSPHERE_TASK_TIMEOUT", 5*time.Minute),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

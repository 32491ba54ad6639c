package config

import (
	"os"
	"strconv"
	"time"
)

const (
	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvTableStoreURL = "TABLE_STORE_URL"
	EnvTableStoreKey = "TABLE_STORE_KEY"

	EnvPaymentBackendURL = "PAYMENT_BACKEND_URL"
	EnvCheckoutKeyID     = "CHECKOUT_KEY_ID"
	EnvCurrency          = "CURRENCY"

	EnvPasswordSalt = "PASSWORD_SALT"
	EnvSessionFile  = "SESSION_FILE"

	EnvVenueName = "VENUE_NAME"
	EnvOpenHour  = "OPEN_HOUR"
	EnvCloseHour = "CLOSE_HOUR"

	EnvClientTimeout   = "CLIENT_TIMEOUT"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)

func getEnvStr(key string, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cuecafe/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string

	TableStoreURL string
	TableStoreKey string

	PaymentBackendURL string
	CheckoutKeyID     string
	Currency          string

	PasswordSalt string
	SessionFile  string

	VenueName string
	OpenHour  int
	CloseHour int

	ClientTimeout   time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log *logger.Logger
}

func Load(serviceName string) *Config {
	// Local development keeps secrets in a .env file; in deployment the
	// environment is already populated.
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnvStr(EnvPort, DefaultPort),
		LogLevel: getEnvStr(EnvLogLevel, DefaultLogLevel),

		TableStoreURL: getEnvStr(EnvTableStoreURL, ""),
		TableStoreKey: getEnvStr(EnvTableStoreKey, ""),

		PaymentBackendURL: getEnvStr(EnvPaymentBackendURL, ""),
		CheckoutKeyID:     getEnvStr(EnvCheckoutKeyID, ""),
		Currency:          getEnvStr(EnvCurrency, DefaultCurrency),

		PasswordSalt: getEnvStr(EnvPasswordSalt, ""),
		SessionFile:  getEnvStr(EnvSessionFile, DefaultSessionFile),

		VenueName: getEnvStr(EnvVenueName, DefaultVenueName),
		OpenHour:  getEnvNum(EnvOpenHour, DefaultOpenHour),
		CloseHour: getEnvNum(EnvCloseHour, DefaultCloseHour),

		ClientTimeout:   getEnvDuration(EnvClientTimeout, DefaultClientTimeout),
		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),
	}

	cfg.Log = logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    "json",
		AddSource: true,
		Service:   serviceName,
	})

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.TableStoreURL == "" {
		errs = append(errs, "TableStoreURL cannot be empty")
	} else if !strings.HasPrefix(cfg.TableStoreURL, "http://") && !strings.HasPrefix(cfg.TableStoreURL, "https://") {
		errs = append(errs, fmt.Sprintf("TableStoreURL must start with http:// or https://, got: %s", cfg.TableStoreURL))
	}
	if cfg.TableStoreKey == "" {
		errs = append(errs, "TableStoreKey cannot be empty")
	}

	if cfg.PaymentBackendURL == "" {
		errs = append(errs, "PaymentBackendURL cannot be empty")
	}
	if cfg.CheckoutKeyID == "" {
		errs = append(errs, "CheckoutKeyID cannot be empty")
	}

	if cfg.PasswordSalt == "" {
		errs = append(errs, "PasswordSalt cannot be empty")
	}
	if cfg.SessionFile == "" {
		errs = append(errs, "SessionFile cannot be empty")
	}

	if cfg.VenueName == "" {
		errs = append(errs, "VenueName cannot be empty")
	}
	if cfg.OpenHour < 0 || cfg.OpenHour > 23 {
		errs = append(errs, fmt.Sprintf("OpenHour must be between 0 and 23, got: %d", cfg.OpenHour))
	}
	if cfg.CloseHour < 1 || cfg.CloseHour > 24 {
		errs = append(errs, fmt.Sprintf("CloseHour must be between 1 and 24, got: %d", cfg.CloseHour))
	}
	if cfg.OpenHour >= cfg.CloseHour {
		errs = append(errs, fmt.Sprintf("OpenHour must be before CloseHour, got: %d >= %d", cfg.OpenHour, cfg.CloseHour))
	}

	if cfg.ClientTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ClientTimeout must be positive, got: %s", cfg.ClientTimeout))
	}
	if cfg.ReadTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LogConfiguration logs the non-secret configuration values at startup.
// Keys and the password salt are never logged.
func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"port", cfg.Port,
		"log_level", cfg.LogLevel,
		"table_store_url", cfg.TableStoreURL,
		"payment_backend_url", cfg.PaymentBackendURL,
		"currency", cfg.Currency,
		"session_file", cfg.SessionFile,
		"venue_name", cfg.VenueName,
		"open_hour", cfg.OpenHour,
		"close_hour", cfg.CloseHour,
		"client_timeout", cfg.ClientTimeout,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

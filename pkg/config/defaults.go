package config

import "time"

const (
	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultCurrency = "INR"

	DefaultSessionFile = "cuecafe_sessions.json"

	DefaultVenueName = "Cue Stories"
	DefaultOpenHour  = 9
	DefaultCloseHour = 23

	DefaultClientTimeout   = 10 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
)

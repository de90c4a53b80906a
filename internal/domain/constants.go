package domain

import "time"

// File permission constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration defaults
const (
	// DefaultListenTimeout bounds the main loop's listen window.
	DefaultListenTimeout = 15 * time.Second
	// DefaultDetectConfirmTimeout bounds the first gate's listen window.
	DefaultDetectConfirmTimeout = 15 * time.Second
	// DefaultExecuteConfirmTimeout bounds the second gate's listen window.
	DefaultExecuteConfirmTimeout = 5 * time.Second
	// DefaultCooldown is how long the loop pauses after a command branch so
	// synthesized speech can finish before the microphone reopens.
	DefaultCooldown = 3 * time.Second
	// DefaultOracleTimeout is the HTTP client timeout for oracle calls.
	DefaultOracleTimeout = 60 * time.Second
)

// History constants
const (
	// DefaultHistoryLimit is the default number of cycle records to display.
	DefaultHistoryLimit = 20
)

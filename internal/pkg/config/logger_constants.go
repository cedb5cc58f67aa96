package config

// Log levels accepted in LoggerSettings.LogLevel. critical sits above error and
// is used for failures that stop the process.
const (
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	LogLevelError    = "error"
	LogLevelWarning  = "warning"
	LogLevelCritical = "critical"
)

// Log sinks.
const (
	LogTypeConsole = "console"
	LogTypeFile    = "file"
)

// Rotation applied to the file logger when the settings leave a field at zero.
const (
	DefaultLogMaxSizeMB  = 10
	DefaultLogMaxBackups = 3
	DefaultLogMaxAgeDays = 28
)

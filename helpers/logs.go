package helpers

import "log/slog"

// Logging is for call sites without an app handle (models, file helpers).
// Routed through the default slog logger so output stays structured.
func Logging(logType, message string) {
	switch logType {
	case "error":
		slog.Error(message)
	case "debug":
		slog.Debug(message)
	case "warn":
		slog.Warn(message)
	default:
		slog.Info(message)
	}
}

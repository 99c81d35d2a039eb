package activation

import "fmt"

// EnabledMessage is printed when monitoring starts.
func EnabledMessage(port string) string {
	return fmt.Sprintf("🟢 Live Reload enabled on port %s", port)
}

// DisabledMessage is printed when monitoring stops.
func DisabledMessage(port string) string {
	return fmt.Sprintf("🔴 Live Reload disabled on port %s", port)
}

// InitializedMessage is printed when monitoring starts because the stored
// flag was already on.
func InitializedMessage(port string) string {
	return fmt.Sprintf("🎉 Live Reload initialized and ENABLED on port %s", port)
}

// StatusMessage reports the stored flag.
func StatusMessage(port string, enabled bool) string {
	if enabled {
		return fmt.Sprintf("STATUS: Live Reload is ENABLED on port %s", port)
	}
	return fmt.Sprintf("STATUS: Live Reload is DISABLED on port %s", port)
}

// ErrorNotice is the user-facing line for a failure that does not stop the engine.
func ErrorNotice(message string) string {
	return fmt.Sprintf("⚠️ %s. Please check the log for details.", message)
}

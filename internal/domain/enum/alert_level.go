package enum

// AlertLevel is the severity of a transient terminal alert
type AlertLevel string

const (
	AlertLevelInfo    AlertLevel = "info"
	AlertLevelSuccess AlertLevel = "success"
	AlertLevelWarning AlertLevel = "warning"
	AlertLevelError   AlertLevel = "error"
)

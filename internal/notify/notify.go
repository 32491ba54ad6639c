package notify

import "cuecafe/pkg/logger"

const (
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Notifier carries the transient user-facing messages the workflow emits.
// The interface exists so the delivery channel can change without touching
// the orchestrators.
type Notifier interface {
	Notify(level, message string)
}

type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(level, message string) {
	switch level {
	case LevelError:
		n.log.Error("notification", "level", level, "message", message)
	case LevelWarning:
		n.log.Warn("notification", "level", level, "message", message)
	default:
		n.log.Info("notification", "level", level, "message", message)
	}
}

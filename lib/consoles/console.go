package consoles

type Console interface {
	Printf(format string, a ...any)
	Warnf(format string, a ...any)
	Errorf(format string, a ...any)

	PushPrefix(format string, a ...any)
	PopPrefix()

	// Prefix returns the current prefix, including the timestamp.
	Prefix() string
}

type Level int

const (
	LevelInfo Level = iota
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

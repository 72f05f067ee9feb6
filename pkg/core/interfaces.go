package core

// Logger receives progress messages from a render.
// Implementations must not block and must tolerate concurrent use.
type Logger interface {
	Printf(format string, args ...interface{})
}

package i

// Logger is the leveled logger used by the services.
type Logger interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

package port

// Fields carries structured data into a log entry.
type Fields map[string]interface{}

// LoggerPort abstracts the application core from the concrete logging stack.
type LoggerPort interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, err error, fields Fields)

	// WithFields returns a logger with the given fields pre-attached,
	// used to carry context such as trace_id or component.
	WithFields(fields Fields) LoggerPort
}

package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger wraps zerolog.Logger with application-specific methods
type Logger struct {
	zerolog.Logger
}

// New creates a new Logger instance
func New(level string, format string) *Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter creates a Logger that writes to out
func NewWithWriter(out io.Writer, level string, format string) *Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var logger zerolog.Logger

	if format == "text" || format == "console" {
		// Human-readable output for development
		output := zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
		logger = zerolog.New(output).Level(lvl).With().Timestamp().Caller().Logger()
	} else {
		logger = zerolog.New(out).Level(lvl).With().Timestamp().Caller().Logger()
	}

	return &Logger{Logger: logger}
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return &Logger{Logger: zerolog.Nop()}
}

// WithRequestID returns a new logger with the request ID attached
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With().Str("request_id", requestID).Logger(),
	}
}

// WithComponent returns a new logger with the component name attached
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.With().Str("component", component).Logger(),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(requestID, method, path string, statusCode int, duration time.Duration, clientIP string) {
	l.Info().
		Str("request_id", requestID).
		Str("method", method).
		Str("path", path).
		Int("status", statusCode).
		Dur("duration", duration).
		Str("client_ip", clientIP).
		Msg("HTTP request")
}

// LateDelivery records a send that settled after the caller had already
// been told it timed out. A delivered late send may mean the recipient
// gets the email even though the visitor saw an error.
func (l *Logger) LateDelivery(reference, recipientDomain string, duration time.Duration, err error) {
	event := l.Warn()
	if err != nil {
		event = event.Err(err)
	}

	event.
		Str("reference", reference).
		Str("recipient_domain", recipientDomain).
		Dur("duration", duration).
		Bool("delivered", err == nil).
		Msg("email send settled after deadline")
}

// Delivery records the outcome of one outbound email
func (l *Logger) Delivery(reference, kind, recipientDomain string, duration time.Duration, err error) {
	event := l.Info()
	if err != nil {
		event = l.Error().Err(err)
	}

	event.
		Str("reference", reference).
		Str("kind", kind).
		Str("recipient_domain", recipientDomain).
		Dur("duration", duration).
		Bool("delivered", err == nil).
		Msg("email delivery")
}

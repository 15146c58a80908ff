package logging

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/cristianoliveira/debugmenu/internal/logstream"
)

var streamRedactor = newRedactor()

type teeLogger struct {
	next   Logger
	stream *logstream.Stream
	fields []any
}

// Tee returns a Logger that writes through next and publishes every entry on
// stream. Error entries carry the current stack trace.
func Tee(next Logger, stream *logstream.Stream) Logger {
	if next == nil {
		next = noopLogger{}
	}
	return &teeLogger{next: next, stream: stream}
}

func (t *teeLogger) Debug(msg string, args ...any) {
	t.next.Debug(msg, args...)
	t.publish(logstream.SeverityDebug, msg, args)
}

func (t *teeLogger) Info(msg string, args ...any) {
	t.next.Info(msg, args...)
	t.publish(logstream.SeverityInfo, msg, args)
}

func (t *teeLogger) Warn(msg string, args ...any) {
	t.next.Warn(msg, args...)
	t.publish(logstream.SeverityWarning, msg, args)
}

func (t *teeLogger) Error(msg string, args ...any) {
	t.next.Error(msg, args...)
	t.publish(logstream.SeverityError, msg, args)
}

func (t *teeLogger) With(args ...any) Logger {
	fields := append(append([]any(nil), t.fields...), args...)
	return &teeLogger{next: t.next.With(args...), stream: t.stream, fields: fields}
}

func (t *teeLogger) Shutdown() error {
	return t.next.Shutdown()
}

func (t *teeLogger) publish(sev logstream.Severity, msg string, args []any) {
	if t.stream == nil {
		return
	}
	entry := logstream.Entry{
		Message:  formatMessage(msg, streamRedactor.redact(append(append([]any(nil), t.fields...), args...))),
		Severity: sev,
	}
	if sev == logstream.SeverityError {
		entry.StackTrace = string(debug.Stack())
	}
	t.stream.Publish(entry)
}

// formatMessage renders msg followed by key=value pairs.
func formatMessage(msg string, pairs []any) string {
	if len(pairs) == 0 {
		return msg
	}
	var sb strings.Builder
	sb.WriteString(msg)
	for i := 0; i < len(pairs); i += 2 {
		sb.WriteString(" ")
		if i+1 < len(pairs) {
			fmt.Fprintf(&sb, "%v=%v", pairs[i], pairs[i+1])
		} else {
			fmt.Fprintf(&sb, "%v", pairs[i])
		}
	}
	return sb.String()
}

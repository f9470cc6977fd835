package observability

import (
	"fmt"
	"log"
	"strings"
)

// Logger is the structured logging surface every package takes; callers
// pass key/value fields instead of formatting strings.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}

type Field interface {
	Key() string
	Value() interface{}
}

type stringField struct{ key, val string }

func (f stringField) Key() string        { return f.key }
func (f stringField) Value() interface{} { return f.val }

type intField struct {
	key string
	val int
}

func (f intField) Key() string        { return f.key }
func (f intField) Value() interface{} { return f.val }

type errorField struct {
	key string
	err error
}

func (f errorField) Key() string        { return f.key }
func (f errorField) Value() interface{} { return f.err }

func String(key, value string) Field    { return stringField{key, value} }
func Int(key string, value int) Field   { return intField{key, value} }
func Error(key string, err error) Field { return errorField{key, err} }

type NopLogger struct{}

func (NopLogger) Debug(string, ...Field) {}
func (NopLogger) Info(string, ...Field)  {}
func (NopLogger) Warn(string, ...Field)  {}
func (NopLogger) Error(string, ...Field) {}
func (NopLogger) With(...Field) Logger   { return NopLogger{} }

// StdLogger writes "level msg key=value ..." lines through a standard
// library logger.
type StdLogger struct {
	out    *log.Logger
	fields []Field
	debug  bool
}

// NewStdLogger logs through out, or the standard logger when out is nil.
func NewStdLogger(out *log.Logger, debug bool) *StdLogger {
	if out == nil {
		out = log.Default()
	}
	return &StdLogger{out: out, debug: debug}
}

func (l *StdLogger) Debug(msg string, fields ...Field) {
	if l.debug {
		l.print("debug", msg, fields)
	}
}

func (l *StdLogger) Info(msg string, fields ...Field)  { l.print("info", msg, fields) }
func (l *StdLogger) Warn(msg string, fields ...Field)  { l.print("warn", msg, fields) }
func (l *StdLogger) Error(msg string, fields ...Field) { l.print("error", msg, fields) }

func (l *StdLogger) With(fields ...Field) Logger {
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &StdLogger{out: l.out, fields: merged, debug: l.debug}
}

func (l *StdLogger) print(level, msg string, fields []Field) {
	var b strings.Builder
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range l.fields {
		writeField(&b, f)
	}
	for _, f := range fields {
		writeField(&b, f)
	}
	l.out.Print(b.String())
}

func writeField(b *strings.Builder, f Field) {
	v := fmt.Sprint(f.Value())
	if strings.ContainsAny(v, " \t\"=") {
		v = fmt.Sprintf("%q", v)
	}
	fmt.Fprintf(b, " %s=%s", f.Key(), v)
}

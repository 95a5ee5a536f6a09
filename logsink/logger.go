// Package logsink implements a small leveled logger that renders every
// record through strfmt instead of fmt, and fans each rendered line out to
// one or more sinks (fly::logger::Logger, log.hpp/log_sink.hpp).
package logsink

import (
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tinywasm/strfmt"
)

// Level is the severity of a log record (log.hpp's fly::logger::Level).
type Level uint8

const (
	Debug Level = iota
	Info
	Warn
	Error
)

// String names the level the way it would appear in a rendered line.
func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Record is a single log entry: its monotonic index, level, timestamp, and
// rendered message (log.hpp's Log struct).
type Record struct {
	Index   uint64
	Level   Level
	Time    time.Time
	Message string
}

// Sink receives every record a Logger emits, regardless of level. A Sink
// must not retain the Record beyond the call to Write.
type Sink interface {
	Write(Record)
}

// WriterSink adapts an io.Writer into a Sink, formatting each record as a
// single line (fly's console_sink.hpp).
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink wraps w as a Sink.
func NewWriterSink(w io.Writer) *WriterSink { return &WriterSink{w: w} }

func (s *WriterSink) Write(r Record) {
	line := strfmt.Format("[{}] {} {}\n", r.Time.Format(time.RFC3339), r.Level.String(), r.Message)
	s.mu.Lock()
	defer s.mu.Unlock()
	io.WriteString(s.w, line)
}

// Logger routes leveled, strfmt-rendered records to every registered sink.
// Unlike the core formatting engine, a Logger is shared across goroutines
// (many call sites log concurrently), so its sink list and counter are
// guarded.
type Logger struct {
	mu      sync.Mutex
	sinks   []Sink
	level   Level
	counter atomic.Uint64
}

// New constructs a Logger that only emits records at or above minLevel.
func New(minLevel Level, sinks ...Sink) *Logger {
	return &Logger{level: minLevel, sinks: sinks}
}

// AddSink registers an additional sink.
func (l *Logger) AddSink(s Sink) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, s)
}

func (l *Logger) emit(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	rec := Record{
		Index:   l.counter.Add(1),
		Level:   level,
		Time:    time.Now(),
		Message: strfmt.Format(format, args...),
	}

	l.mu.Lock()
	sinks := l.sinks
	l.mu.Unlock()

	for _, s := range sinks {
		s.Write(rec)
	}
}

// Debugf logs at Debug level.
func (l *Logger) Debugf(format string, args ...any) { l.emit(Debug, format, args...) }

// Infof logs at Info level.
func (l *Logger) Infof(format string, args ...any) { l.emit(Info, format, args...) }

// Warnf logs at Warn level.
func (l *Logger) Warnf(format string, args ...any) { l.emit(Warn, format, args...) }

// Errorf logs at Error level.
func (l *Logger) Errorf(format string, args ...any) { l.emit(Error, format, args...) }

// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// logging.go - Leveled logging sink for keel.
//
// There is no package-level logger on purpose: the runtime context constructs
// exactly one Sink per invocation and hands it to anything that needs to log.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// =============================================================================
// LEVELS
// =============================================================================

// Level is a log severity. Trace sits below debug so that trace output can be
// enabled independently of the usual debug verbosity.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// String returns the upper-case level name used in log lines.
func (l Level) String() string {
	switch l {
	case LevelTrace:
		return "TRACE"
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	case LevelCritical:
		return "CRITICAL"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel maps a level name to a Level. Parsing is permissive: names are
// matched case-insensitively, "warn" is accepted as an alias for "warning",
// and anything unrecognized falls back to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warning", "warn":
		return LevelWarning
	case "error":
		return LevelError
	case "critical":
		return LevelCritical
	default:
		return LevelInfo
	}
}

// =============================================================================
// SINK
// =============================================================================

// Options configures a Sink.
type Options struct {
	// Level is the minimum level that will be emitted.
	Level Level
	// JSON switches output from text lines to one JSON object per line.
	JSON bool
	// FilePath, when non-empty, tees log output to the given file (appended,
	// created if missing). The path must already be expanded.
	FilePath string
	// Diagnostics adds the caller file:line to every record.
	Diagnostics bool
	// InvocationID tags every record with the current invocation.
	InvocationID string
}

// Sink is a leveled log writer. A Sink is constructed once per invocation by
// the runtime context and passed to anything that logs.
type Sink struct {
	mu           sync.Mutex
	out          io.Writer
	file         *os.File
	level        Level
	json         bool
	diagnostics  bool
	invocationID string
}

// record is the JSON line format.
type record struct {
	Time         string `json:"time"`
	Level        string `json:"level"`
	Message      string `json:"message"`
	InvocationID string `json:"invocation_id,omitempty"`
	Caller       string `json:"caller,omitempty"`
}

// NewSink creates a Sink writing to out (and to Options.FilePath when set).
func NewSink(out io.Writer, opts Options) (*Sink, error) {
	s := &Sink{
		out:          out,
		level:        opts.Level,
		json:         opts.JSON,
		diagnostics:  opts.Diagnostics,
		invocationID: opts.InvocationID,
	}

	if opts.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(opts.FilePath), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		f, err := os.OpenFile(opts.FilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		s.file = f
	}

	return s, nil
}

// Close releases the log file, if any.
func (s *Sink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	return err
}

// Level returns the minimum level this sink emits.
func (s *Sink) Level() Level {
	return s.level
}

// Enabled reports whether records at the given level would be emitted.
func (s *Sink) Enabled(l Level) bool {
	return l >= s.level
}

func (s *Sink) log(l Level, format string, args ...any) {
	if !s.Enabled(l) {
		return
	}

	msg := fmt.Sprintf(format, args...)
	now := time.Now()

	caller := ""
	if s.diagnostics {
		if _, file, line, ok := runtime.Caller(2); ok {
			caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
		}
	}

	var line string
	if s.json {
		data, err := json.Marshal(record{
			Time:         now.UTC().Format(time.RFC3339),
			Level:        l.String(),
			Message:      msg,
			InvocationID: s.invocationID,
			Caller:       caller,
		})
		if err != nil {
			return
		}
		line = string(data)
	} else {
		line = fmt.Sprintf("%s %-8s %s", now.Format("15:04:05"), l.String(), msg)
		if caller != "" {
			line += " (" + caller + ")"
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.out, line)
	if s.file != nil {
		fmt.Fprintln(s.file, line)
	}
}

// Tracef logs at trace level.
func (s *Sink) Tracef(format string, args ...any) { s.log(LevelTrace, format, args...) }

// Debugf logs at debug level.
func (s *Sink) Debugf(format string, args ...any) { s.log(LevelDebug, format, args...) }

// Infof logs at info level.
func (s *Sink) Infof(format string, args ...any) { s.log(LevelInfo, format, args...) }

// Warnf logs at warning level.
func (s *Sink) Warnf(format string, args ...any) { s.log(LevelWarning, format, args...) }

// Errorf logs at error level.
func (s *Sink) Errorf(format string, args ...any) { s.log(LevelError, format, args...) }

// Criticalf logs at critical level.
func (s *Sink) Criticalf(format string, args ...any) { s.log(LevelCritical, format, args...) }

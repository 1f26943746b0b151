// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 40 // Base width for filename
	statusWidth = 10 // Width for status text
	ruleLine    = "========================================"
)

// 🎯 Logger records copy sessions on the console, in zerolog and in an optional durable sink.
// All methods are safe for concurrent use; lines are serialized by one mutex.
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	sink    *Sink
	mu      sync.Mutex
}

// 🏭 New creates a new logger. sink may be nil.
func New(console io.Writer, zlog zerolog.Logger, sink *Sink) *Logger {
	if console == nil {
		console = io.Discard
	}
	return &Logger{
		zlog:    zlog,
		console: console,
		sink:    sink,
	}
}

// Discard returns a logger that writes nowhere.
func Discard() *Logger {
	return New(io.Discard, zerolog.Nop(), nil)
}

// WithConsole returns a logger that shares this logger's sink and zerolog
// logger but prints console lines to w.
func (l *Logger) WithConsole(w io.Writer) *Logger {
	return New(w, l.zlog, l.sink)
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context, falling back to Discard.
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		return Discard()
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// write appends to the sink; callers hold l.mu.
func (l *Logger) write(lines ...string) {
	if l.sink == nil {
		return
	}
	if err := l.sink.Append(lines...); err != nil {
		l.zlog.Warn().Err(err).Str("path", l.sink.Path()).Msg("writing log file")
	}
}

// 📝 formatFile formats a per-file line for display
func formatFile(symbol string, symbolColor color.Attribute, name, status, detail string) string {
	line := fmt.Sprintf("%s%s %s %s",
		strings.Repeat(" ", fileIndent),
		color.New(symbolColor).Sprint(symbol),
		fmt.Sprintf("%-*s", nameWidth, name),
		color.New(symbolColor).Sprint(fmt.Sprintf("%-*s", statusWidth, status)))
	if detail != "" {
		line += " " + color.New(color.Faint).Sprint(detail)
	}
	return strings.TrimRight(line, " ")
}

// 📦 SessionStart records the start of a copy session.
func (l *Logger) SessionStart(ctx context.Context, source, target string, files int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.write(
		ruleLine,
		"Copy session started",
		"Source: "+source,
		"Target: "+target,
		fmt.Sprintf("Files to copy: %d", files),
		ruleLine,
	)

	fmt.Fprintf(l.console, "[copying to %s]\n", color.New(color.FgCyan).Sprint(target))

	l.zlog.Info().
		Str("source", source).
		Str("target", target).
		Int("files", files).
		Msg("copy session started")
}

// ✓ Copied records a copied file.
func (l *Logger) Copied(ctx context.Context, name string, overwritten bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	suffix := ""
	symbol, symbolColor := "✓", color.FgGreen
	if overwritten {
		suffix = " (overwritten)"
		symbol, symbolColor = "⟳", color.FgBlue
	}

	l.write("COPIED: " + name + suffix)
	fmt.Fprintln(l.console, formatFile(symbol, symbolColor, name, "copied", strings.TrimSpace(suffix)))

	l.zlog.Info().
		Str("file", name).
		Bool("overwritten", overwritten).
		Msg("copied")
}

// ⏭️ Skipped records a file that was not copied for reason.
func (l *Logger) Skipped(ctx context.Context, name, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.write("SKIPPED: " + name + " - " + reason)
	fmt.Fprintln(l.console, formatFile("-", color.FgYellow, name, "skipped", reason))

	l.zlog.Info().
		Str("file", name).
		Str("reason", reason).
		Msg("skipped")
}

// ✗ Failed records a file whose copy failed.
func (l *Logger) Failed(ctx context.Context, name, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.write("ERROR: " + name + " - " + reason)
	fmt.Fprintln(l.console, formatFile("✗", color.FgRed, name, "error", reason))

	l.zlog.Error().
		Str("file", name).
		Str("reason", reason).
		Msg("copy failed")
}

// 🏁 SessionEnd records the totals of a copy session.
func (l *Logger) SessionEnd(ctx context.Context, copied, skipped, errors int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	summary := fmt.Sprintf("Session complete: %d copied, %d skipped, %d errors", copied, skipped, errors)
	l.write(ruleLine, summary, ruleLine)

	l.zlog.Info().
		Int("copied", copied).
		Int("skipped", skipped).
		Int("errors", errors).
		Msg("copy session complete")
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(msg)
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(msg)
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.write(msg)
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

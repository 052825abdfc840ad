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
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/walteh/xmpsync/pkg/asset"
)

// 🎨 Display configuration
const (
	assetIndent = 4  // spaces to indent asset entries
	nameWidth   = 40 // Base width for the primary file
	kindWidth   = 8  // Width for the asset kind
)

// 🎯 Logger prints user-facing lines and mirrors them into zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Console returns the writer user-facing lines go to.
func (l *Logger) Console() io.Writer {
	return l.console
}

// 📝 formatAsset formats a discovered asset for display
func formatAsset(a asset.MediaAsset, root string) string {
	symbol := color.New(color.FgCyan).Sprint("•")
	kindColor := color.FgBlue
	if a.Kind == asset.KindVideo {
		kindColor = color.FgMagenta
	}

	extras := ""
	if a.Secondary != "" {
		extras = color.New(color.FgYellow).Sprint("+raw")
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", assetIndent, ""),
		symbol,
		fmt.Sprintf("%-*s", nameWidth, relative(root, a.Primary)),
		color.New(kindColor).Sprint(fmt.Sprintf("%-*s", kindWidth, a.Kind)),
		extras)
}

func relative(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}

// 📝 LogAsset prints one discovered asset
func (l *Logger) LogAsset(ctx context.Context, root string, a asset.MediaAsset) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, formatAsset(a, root))

	l.zlog.Debug().
		Str("primary", a.Primary).
		Str("sidecar", a.Sidecar).
		Str("secondary", a.Secondary).
		Str("kind", a.Kind.String()).
		Msg("asset")
}

// 📝 Step prints a plain "> msg" line
func (l *Logger) Step(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "> %s\n", msg)
	l.zlog.Info().Msg(msg)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("xmpsync")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error message
func (l *Logger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "❌ %s\n", color.New(color.FgRed).Sprint(msg))
	l.zlog.Error().Msg(msg)
}

// 📝 Stepf logs a formatted step
func (l *Logger) Stepf(format string, args ...interface{}) {
	l.Step(fmt.Sprintf(format, args...))
}

// Package logger implements ports.Logger for the CLI: a color-capable
// console logger whose messages pass through the go-l10n lexicon, and a
// discard logger for quiet mode.
package logger

import (
	"fmt"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"

	"github.com/user/castcut/pkg/ports"
)

const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorCyan   = "\033[36m"
)

// ConsoleLogger writes localized log lines to stdout, routing warnings
// and errors to stderr. Lines are colored per level when the output is
// a terminal.
type ConsoleLogger struct {
	level     ports.LogLevel
	component string
	color     bool
}

// NewConsole returns a console logger filtering below level. Color is
// enabled only when stdout is a terminal (Cygwin pty included).
func NewConsole(level ports.LogLevel) *ConsoleLogger {
	fd := os.Stdout.Fd()
	return &ConsoleLogger{
		level: level,
		color: isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd),
	}
}

func (l *ConsoleLogger) Debug(msg string, args ...interface{}) {
	if l.level <= ports.LevelDebug {
		l.log(ports.LevelDebug, msg, args...)
	}
}

func (l *ConsoleLogger) Info(msg string, args ...interface{}) {
	if l.level <= ports.LevelInfo {
		l.log(ports.LevelInfo, msg, args...)
	}
}

func (l *ConsoleLogger) Warn(msg string, args ...interface{}) {
	if l.level <= ports.LevelWarn {
		l.log(ports.LevelWarn, msg, args...)
	}
}

func (l *ConsoleLogger) Error(msg string, args ...interface{}) {
	if l.level <= ports.LevelError {
		l.log(ports.LevelError, msg, args...)
	}
}

// WithComponent returns a copy of the logger that prefixes every line
// with [component].
func (l *ConsoleLogger) WithComponent(component string) ports.Logger {
	c := *l
	c.component = component
	return &c
}

func (l *ConsoleLogger) log(level ports.LogLevel, msg string, args ...interface{}) {
	// Format strings double as l10n lexicon keys.
	line := l10n.F(msg, args...)

	if l.component != "" {
		if l.color {
			line = fmt.Sprintf("%s[%s]%s %s", colorCyan, l.component, colorReset, line)
		} else {
			line = fmt.Sprintf("[%s] %s", l.component, line)
		}
	}

	if l.color {
		if c := levelColor(level); c != "" {
			line = c + line + colorReset
		}
	}

	if level >= ports.LevelWarn {
		fmt.Fprintln(os.Stderr, line)
	} else {
		fmt.Fprintln(os.Stdout, line)
	}
}

// levelColor returns the ANSI color for a level, "" for plain info.
func levelColor(level ports.LogLevel) string {
	switch level {
	case ports.LevelDebug:
		return colorGray
	case ports.LevelWarn:
		return colorYellow
	case ports.LevelError:
		return colorRed
	default:
		return ""
	}
}

var _ ports.Logger = (*ConsoleLogger)(nil)

// Package logger provides leveled logging for the steinschliff CLI.
// Messages go to stderr; level tags are coloured when stderr is a terminal.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/term"
)

// Level is a logging threshold.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARNING"
	default:
		return "ERROR"
	}
}

// ParseLevel accepts DEBUG, INFO, WARNING (or WARN) and ERROR in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug, nil
	case "INFO", "":
		return LevelInfo, nil
	case "WARNING", "WARN":
		return LevelWarn, nil
	case "ERROR":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var (
	mu     sync.RWMutex
	level            = LevelInfo
	output io.Writer = os.Stderr
	color            = isTerminal(os.Stderr)
)

var tagStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	LevelWarn:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	LevelError: lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// SetLevel sets the minimum level that is printed.
func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

// GetLevel returns the current threshold.
func GetLevel() Level {
	mu.RLock()
	defer mu.RUnlock()
	return level
}

// SetOutput sets the writer for log lines. Defaults to os.Stderr.
// Colour is enabled only when w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	color = isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func logf(l Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if l < level {
		return
	}
	tag := "[" + l.String() + "]"
	if color {
		tag = tagStyles[l].Render(tag)
	}
	fmt.Fprintf(output, tag+" "+format+"\n", args...)
}

// Debug logs at DEBUG level.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info logs at INFO level.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn logs at WARNING level.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error logs at ERROR level.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a section header at DEBUG level.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if level <= LevelDebug {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Dump pretty-prints v at DEBUG level.
func Dump(label string, v any) {
	mu.RLock()
	defer mu.RUnlock()
	if level > LevelDebug {
		return
	}
	cfg := spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}
	fmt.Fprintf(output, "[DEBUG] %s:\n%s", label, cfg.Sdump(v))
}

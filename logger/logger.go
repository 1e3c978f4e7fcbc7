// Package logger provides leveled, styled logging for the scanner.
//
// All output goes to stderr so machine-readable graph output on stdout stays
// clean.
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Level controls which messages a logger emits.
type Level int

const (
	LevelError Level = iota
	LevelInfo
	LevelDebug
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Logger is the leveled logging surface used across the scanner.
type Logger interface {
	Errorf(format string, args ...any)
	Infof(format string, args ...any)
	Debugf(format string, args ...any)
}

// Console writes styled messages to a writer, dropping anything above its
// level.
type Console struct {
	level   Level
	w       io.Writer
	noColor bool
}

// New returns a console logger on stderr.
func New(level Level, noColor bool) *Console {
	return &Console{level: level, w: os.Stderr, noColor: noColor}
}

// NewWriter returns a console logger on an arbitrary writer. Tests use it.
func NewWriter(w io.Writer, level Level, noColor bool) *Console {
	return &Console{level: level, w: w, noColor: noColor}
}

func (c *Console) Errorf(format string, args ...any) {
	c.emit(LevelError, errorStyle, "error", format, args)
}

func (c *Console) Infof(format string, args ...any) {
	c.emit(LevelInfo, infoStyle, "info", format, args)
}

func (c *Console) Debugf(format string, args ...any) {
	c.emit(LevelDebug, debugStyle, "debug", format, args)
}

func (c *Console) emit(lv Level, style lipgloss.Style, tag, format string, args []any) {
	if lv > c.level {
		return
	}
	if !c.noColor {
		tag = style.Render(tag)
	}
	fmt.Fprintf(c.w, "%s: %s\n", tag, fmt.Sprintf(format, args...))
}

// Nop discards everything.
type Nop struct{}

func (Nop) Errorf(string, ...any) {}
func (Nop) Infof(string, ...any)  {}
func (Nop) Debugf(string, ...any) {}

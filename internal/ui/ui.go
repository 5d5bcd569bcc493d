// Package ui renders console panels and tables for the CLI.
//
// Every function returns a string; printing is left to the caller so the
// same output can go to stdout, stderr or a test buffer.
package ui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"steinschliff/internal/model"
)

// Palette used by panels and tables.
var (
	ColorInfo    = lipgloss.Color("#06B6D4")
	ColorOK      = lipgloss.Color("#A6E3A1")
	ColorWarning = lipgloss.Color("#F9E2AF")
	ColorError   = lipgloss.Color("#F38BA8")
	ColorAccent  = lipgloss.Color("#7C3AED")
	ColorMuted   = lipgloss.Color("#6C7086")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	keyStyle    = lipgloss.NewStyle().Bold(true)
	valueStyle  = lipgloss.NewStyle().Foreground(ColorInfo)
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorInfo).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// Panel frames body with a rounded border and a bold title line.
func Panel(title, body string, border lipgloss.Color) string {
	content := body
	if title != "" {
		content = titleStyle.Foreground(border).Render(title) + "\n" + body
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Render(content)
}

// KV is one row of a key/value panel.
type KV struct {
	Key   string
	Value string
}

// KVPanel renders rows as "key: value" lines inside a panel.
func KVPanel(title string, rows []KV, border lipgloss.Color) string {
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, keyStyle.Render(r.Key+":")+" "+valueStyle.Render(r.Value))
	}
	return Panel(title, strings.Join(lines, "\n"), border)
}

// ItemsPanel lists items one per line inside a panel.
func ItemsPanel(title string, items []string, border lipgloss.Color) string {
	return Panel(title, strings.Join(items, "\n"), border)
}

// ErrorPanel renders err for the user. A UserError shows its title and
// message; anything else shows the error text under a generic title.
func ErrorPanel(err error) string {
	var ue *model.UserError
	if errors.As(err, &ue) {
		return Panel(ue.Title, ue.Message, ColorError)
	}
	return Panel("Ошибка", err.Error(), ColorError)
}

// Notice is a yellow single-message panel.
func Notice(msg string) string {
	return Panel("", msg, ColorWarning)
}

// percent formats part of total with one decimal, 0 for an empty total.
func percent(part, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

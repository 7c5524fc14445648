// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskcli/internal/service"
)

// Styler renders task statuses, optionally with terminal colors.
type Styler struct {
	enabled bool
	styles  map[service.Status]lipgloss.Style
}

// NewStyler returns a Styler. When color is false statuses are printed verbatim.
func NewStyler(color bool) *Styler {
	return &Styler{
		enabled: color,
		styles: map[service.Status]lipgloss.Style{
			service.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color("#E5C07B")),
			service.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF")).Bold(true),
			service.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379")),
		},
	}
}

// Status renders a status label.
func (s *Styler) Status(st service.Status) string {
	if s == nil || !s.enabled {
		return string(st)
	}
	style, ok := s.styles[st]
	if !ok {
		return string(st)
	}
	return style.Render(string(st))
}

// FormatTask writes a task line for the list command.
// Format: "{ID}: {DESCRIPTION} [{STATUS}]\n"
func FormatTask(w io.Writer, s *Styler, task service.Task) {
	fmt.Fprintf(w, "%d: %s [%s]\n", task.ID, normalizeDescription(task.Description), s.Status(task.Status))
}

// normalizeDescription keeps each task on one line.
func normalizeDescription(desc string) string {
	desc = strings.ReplaceAll(desc, "\r\n", " ")
	desc = strings.ReplaceAll(desc, "\r", " ")
	return strings.ReplaceAll(desc, "\n", " ")
}

// Package export renders the task collection as JSON, CSV or a PDF report.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"taskcli/internal/service"
)

// ErrUnknownFormat is returned for an unsupported export format.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats lists the supported export formats.
var Formats = []string{"json", "csv", "pdf"}

// Exporter reads tasks through a service.Service.
type Exporter struct {
	svc service.Service
}

// New creates an Exporter.
func New(svc service.Service) *Exporter {
	return &Exporter{svc: svc}
}

// Export returns all tasks encoded in format.
func (e *Exporter) Export(ctx context.Context, format string) ([]byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if !isKnown(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	tasks, err := e.svc.List(ctx, "")
	if err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}

	switch format {
	case "json":
		return exportJSON(tasks)
	case "csv":
		return exportCSV(tasks)
	default:
		return exportPDF(tasks)
	}
}

func isKnown(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

func exportJSON(tasks []service.Task) ([]byte, error) {
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func exportCSV(tasks []service.Task) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"id", "description", "status", "createdAt", "updatedAt"}); err != nil {
		return nil, err
	}
	for _, t := range tasks {
		row := []string{
			strconv.Itoa(t.ID),
			t.Description,
			string(t.Status),
			t.CreatedAt.UTC().Format(service.TimeLayout),
			t.UpdatedAt.UTC().Format(service.TimeLayout),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func exportPDF(tasks []service.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(40, 10, "Task Report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	if len(tasks) == 0 {
		pdf.Cell(40, 6, "No tasks.")
	}
	for _, t := range tasks {
		line := fmt.Sprintf("#%d [%s] %s (updated %s)", t.ID, t.Status, t.Description, t.UpdatedAt.Format("2006-01-02 15:04"))
		pdf.MultiCell(0, 6, tr(line), "0", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/export"
	"taskcli/internal/service"
)

func init() {
	Register(&ExportCmd{})
}

// ExportCmd implements the export command.
type ExportCmd struct {
	format string
	output string
}

// SetFormat sets the export format (for testing).
func (c *ExportCmd) SetFormat(format string) {
	c.format = format
}

// SetOutput sets the output file (for testing).
func (c *ExportCmd) SetOutput(path string) {
	c.output = path
}

func (c *ExportCmd) Name() string      { return "export" }
func (c *ExportCmd) Aliases() []string { return nil }
func (c *ExportCmd) Synopsis() string  { return "Export all tasks as json, csv or pdf" }
func (c *ExportCmd) Usage() string {
	return "task-cli export [common flags] [--format json|csv|pdf] [--output <file>]"
}
func (c *ExportCmd) NeedsStore() bool { return true }

func (c *ExportCmd) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.format, "format", "f", "json", "")
	fs.StringVarP(&c.output, "output", "o", "", "")
}

func (c *ExportCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}
	format := c.format
	if format == "" {
		format = "json"
	}

	data, err := export.New(svc).Export(ctx, format)
	if err != nil {
		if errors.Is(err, export.ErrUnknownFormat) {
			fmt.Fprintf(errOut, "error: unknown format: %s (want %s)\n", format, strings.Join(export.Formats, ", "))
			return exitcode.UserError
		}
		fmt.Fprintf(errOut, "error: storage error: %v\n", err)
		return exitcode.StorageError
	}

	if c.output == "" {
		if _, err := out.Write(data); err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.StorageError
		}
		return exitcode.Success
	}

	if err := os.WriteFile(c.output, data, 0o644); err != nil {
		fmt.Fprintf(errOut, "error: write export: %v\n", err)
		return exitcode.StorageError
	}
	return reportSuccess(cfg, out, "Exported tasks to %s", c.output)
}

package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

func init() {
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
type UpdateCmd struct{}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return nil }
func (c *UpdateCmd) Synopsis() string  { return "Update a task description" }
func (c *UpdateCmd) Usage() string     { return "task-cli update [common flags] <id> <description...>" }
func (c *UpdateCmd) NeedsStore() bool  { return true }

func (c *UpdateCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := requireID(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if len(args) < 2 {
		fmt.Fprintln(errOut, "error: description required")
		return exitcode.UserError
	}

	if _, err := svc.Update(ctx, id, strings.Join(args[1:], " ")); err != nil {
		return reportFailure(out, errOut, id, err)
	}
	return reportSuccess(cfg, out, "Task %s updated successfully.", id)
}

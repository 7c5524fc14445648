package commands

import (
	"context"
	"io"

	"github.com/spf13/pflag"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
)

func init() {
	Register(&MarkInProgressCmd{})
	Register(&MarkDoneCmd{})
}

// MarkInProgressCmd implements the mark-in-progress command.
type MarkInProgressCmd struct{}

func (c *MarkInProgressCmd) Name() string      { return "mark-in-progress" }
func (c *MarkInProgressCmd) Aliases() []string { return nil }
func (c *MarkInProgressCmd) Synopsis() string  { return "Mark a task as in progress" }
func (c *MarkInProgressCmd) Usage() string     { return "task-cli mark-in-progress [common flags] <id>" }
func (c *MarkInProgressCmd) NeedsStore() bool  { return true }

func (c *MarkInProgressCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *MarkInProgressCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runMark(ctx, cfg, svc.MarkInProgress, args, out, errOut)
}

// MarkDoneCmd implements the mark-done command.
type MarkDoneCmd struct{}

func (c *MarkDoneCmd) Name() string      { return "mark-done" }
func (c *MarkDoneCmd) Aliases() []string { return nil }
func (c *MarkDoneCmd) Synopsis() string  { return "Mark a task as done" }
func (c *MarkDoneCmd) Usage() string     { return "task-cli mark-done [common flags] <id>" }
func (c *MarkDoneCmd) NeedsStore() bool  { return true }

func (c *MarkDoneCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *MarkDoneCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runMark(ctx, cfg, svc.MarkDone, args, out, errOut)
}

// runMark is the shared implementation for the status commands.
func runMark(ctx context.Context, cfg *config.Config, mark func(context.Context, string) (service.Task, error), args []string, out, errOut io.Writer) int {
	id, ok := requireID(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	task, err := mark(ctx, id)
	if err != nil {
		return reportFailure(out, errOut, id, err)
	}
	return reportSuccess(cfg, out, "Task %s marked as %s.", id, task.Status)
}

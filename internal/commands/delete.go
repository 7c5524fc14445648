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
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct{}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "task-cli delete [common flags] <id>" }
func (c *DeleteCmd) NeedsStore() bool  { return true }

func (c *DeleteCmd) RegisterFlags(fs *pflag.FlagSet) {}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := requireID(args, errOut)
	if !ok {
		return exitcode.UserError
	}
	if err := svc.Delete(ctx, id); err != nil {
		return reportFailure(out, errOut, id, err)
	}
	return reportSuccess(cfg, out, "Task %s deleted successfully.", id)
}

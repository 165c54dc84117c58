package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"complaintdesk/internal/app"
)

type MigrateCmd struct {
	flags *Flags
}

// NewMigrateCmd creates the migrate command
func NewMigrateCmd(flags *Flags) *MigrateCmd {
	return &MigrateCmd{flags: flags}
}

// Register adds the migrate command to the application
func (cmd *MigrateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "migrate",
		Usage:       "Apply pending database migrations",
		UsageText:   "complaintdesk migrate",
		Description: "Applies embedded schema migrations and prints the versions that ran.",
		Action:      cmd.run,
	})
	return app
}

func (cmd *MigrateCmd) run(ctx context.Context, c *cli.Command) error {
	store, err := app.OpenStore(cmd.flags.Config, cmd.flags.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	applied, err := store.Migrate(ctx)
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if len(applied) == 0 {
		_, _ = fmt.Fprintln(out, "database is up to date")
		return nil
	}
	for _, version := range applied {
		_, _ = fmt.Fprintf(out, "applied %s\n", version)
	}
	return nil
}

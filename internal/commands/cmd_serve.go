package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"complaintdesk/internal/app"
)

type ServeCmd struct {
	flags *Flags
	port  int64
}

// NewServeCmd creates the serve command
func NewServeCmd(flags *Flags) *ServeCmd {
	return &ServeCmd{flags: flags}
}

// Register adds the serve command to the application
func (cmd *ServeCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "serve",
		Usage:       "Run the HTTP API and dashboard event stream",
		UsageText:   "complaintdesk serve [--port N]",
		Description: "Applies pending migrations, then serves until interrupted.",
		Flags:       cmd.Flags(),
		Action:      cmd.Run,
	})
	return app
}

// Flags returns the serve flags, also registered on the root so that the
// default action accepts them.
func (cmd *ServeCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "port",
			Usage:       "override http.port",
			Local:       true,
			Destination: &cmd.port,
		},
	}
}

func (cmd *ServeCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	if c.IsSet("port") {
		cfg.HTTP.Port = int(cmd.port)
	}

	application, err := app.NewApplication(cfg, cmd.flags.Logger)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	return application.Run(ctx)
}

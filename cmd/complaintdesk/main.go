package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"complaintdesk/internal/commands"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "complaintdesk: %v\n", err)
		stop()
		os.Exit(1)
	}
}

// newApp assembles the root command. Split from main so tests can run it
// against an argument list.
func newApp() *cli.Command {
	flags := &commands.Flags{}

	app := &cli.Command{
		Name:      "complaintdesk",
		Usage:     "Public complaint intake with a live admin dashboard feed",
		UsageText: "complaintdesk [global options] [command [command options]]",
		Description: `Complaintdesk serves the station and complaint REST API and pushes
every accepted write to connected admin dashboards over WebSocket.

Run 'complaintdesk' with no command to start the server.
Run 'complaintdesk token --admin-id ID' to mint a dashboard credential.`,
		Version: build(),
		Flags:   commands.GlobalFlags(flags),
		Before:  commands.Before(flags),
		After: func(ctx context.Context, c *cli.Command) error {
			return flags.Close()
		},
	}

	serveCmd := commands.NewServeCmd(flags)

	app = serveCmd.Register(app)
	app = commands.NewMigrateCmd(flags).Register(app)
	app = commands.NewTokenCmd(flags).Register(app)

	// Serve flags on the root so the default action accepts them
	app.Flags = append(app.Flags, serveCmd.Flags()...)

	app.Action = func(ctx context.Context, c *cli.Command) error {
		if c.Args().Len() > 0 {
			return fmt.Errorf("unknown command %q. Run 'complaintdesk --help' for usage", c.Args().First())
		}
		return serveCmd.Run(ctx, c)
	}

	return app
}

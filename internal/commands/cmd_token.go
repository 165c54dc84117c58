package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"complaintdesk/internal/auth"
	"complaintdesk/pkg/types"
)

type TokenCmd struct {
	flags   *Flags
	adminID string
	email   string
	role    string
	ttl     time.Duration
}

// NewTokenCmd creates the token command
func NewTokenCmd(flags *Flags) *TokenCmd {
	return &TokenCmd{flags: flags}
}

// Register adds the token command to the application
func (cmd *TokenCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "token",
		Usage:     "Issue a signed dashboard credential",
		UsageText: "complaintdesk token --admin-id ID [--email E] [--role R] [--ttl D]",
		Description: `Prints a JWT signed with auth.secret. Dashboards send it as a bearer
header on API calls and as the token query parameter on /ws.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "admin-id",
				Usage:       "subject of the token",
				Required:    true,
				Destination: &cmd.adminID,
			},
			&cli.StringFlag{
				Name:        "email",
				Usage:       "email claim",
				Destination: &cmd.email,
			},
			&cli.StringFlag{
				Name:        "role",
				Usage:       "role claim; only admin may connect",
				Value:       types.RoleAdmin,
				Destination: &cmd.role,
			},
			&cli.DurationFlag{
				Name:        "ttl",
				Usage:       "lifetime (default: auth.token_ttl)",
				Destination: &cmd.ttl,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *TokenCmd) run(_ context.Context, c *cli.Command) error {
	cfg := cmd.flags.Config
	ttl := cfg.Auth.TokenTTL
	if cmd.ttl > 0 {
		ttl = cmd.ttl
	}

	issuer, err := auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, ttl)
	if err != nil {
		return err
	}
	token, err := issuer.Issue(cmd.adminID, cmd.email, cmd.role)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(c.Root().Writer, token)
	return err
}

package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func registerCommand() *cli.Command {
	var (
		cfg   config
		email string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "email",
			Aliases:     []string{"e"},
			Usage:       "Email address of the new account",
			Sources:     cli.EnvVars("HOLMES_EMAIL"),
			Destination: &email,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "register",
		Usage: "Create a new account and start a session",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := cfg.sessionStore()
			if err != nil {
				return err
			}

			sess, err := store.Register(ctx, cfg.newAuth(), email)
			if err != nil {
				return goerr.Wrap(err, "failed to register")
			}

			fmt.Fprintf(c.Root().Writer, "Registered %s (%s)\n", sess.Email, sess.UserID)
			return nil
		},
	}
}

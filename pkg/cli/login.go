package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func loginCommand() *cli.Command {
	var (
		cfg   config
		email string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "email",
			Aliases:     []string{"e"},
			Usage:       "Email address of the account",
			Sources:     cli.EnvVars("HOLMES_EMAIL"),
			Destination: &email,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "login",
		Usage: "Sign in by email and start a session",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := cfg.sessionStore()
			if err != nil {
				return err
			}

			sess, err := store.Login(ctx, cfg.newAuth(), email)
			if err != nil {
				return goerr.Wrap(err, "failed to sign in")
			}

			fmt.Fprintf(c.Root().Writer, "Signed in as %s (%s)\n", sess.Email, sess.UserID)
			return nil
		},
	}
}

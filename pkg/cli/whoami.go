package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func whoamiCommand() *cli.Command {
	var (
		cfg    config
		verify bool
	)

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "verify",
			Usage:       "Check the stored identity against the service",
			Destination: &verify,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in identity",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			if verify {
				user, err := cfg.newAuth().GetUser(ctx, sess.UserID)
				if err != nil {
					return goerr.Wrap(err, "stored session is no longer valid", goerr.V("user_id", sess.UserID))
				}
				fmt.Fprintf(c.Root().Writer, "%s\t%s\n", user.ID, user.Email)
				return nil
			}

			fmt.Fprintf(c.Root().Writer, "%s\t%s\n", sess.UserID, sess.Email)
			return nil
		},
	}
}

func logoutCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "logout",
		Usage: "End the session and clear the stored identity",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			store, err := cfg.sessionStore()
			if err != nil {
				return err
			}

			if err := store.Logout(); err != nil {
				return err
			}

			fmt.Fprintf(c.Root().Writer, "Signed out\n")
			return nil
		},
	}
}

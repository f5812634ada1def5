package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

type Error struct {
	Code    int
	Message string
}

func Run(ctx context.Context, argv []string) *Error {
	cmd := &cli.Command{
		Name:  "holmes",
		Usage: "Personal Q&A notebook over a document corpus",
		Commands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			whoamiCommand(),
			logoutCommand(),
			listCommand(),
			showCommand(),
			newCommand(),
			editCommand(),
			deleteCommand(),
			askCommand(),
			uploadCommand(),
			reindexCommand(),
			docsCommand(),
			searchCommand(),
			consoleCommand(),
		},
	}

	if err := cmd.Run(ctx, argv); err != nil {
		return &Error{
			Code:    1,
			Message: err.Error(),
		}
	}

	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/model"
)

func showCommand() *cli.Command {
	var (
		cfg        config
		questionID model.QuestionID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Question ID to show",
			Destination: (*string)(&questionID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "show",
		Usage: "Show one question with its answer",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			record, err := cfg.newQuestions().Get(ctx, sess.UserID, questionID)
			if err != nil {
				return goerr.Wrap(err, "failed to get question")
			}

			data, err := json.MarshalIndent(record, "", "  ")
			if err != nil {
				return goerr.Wrap(err, "failed to marshal question")
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", string(data))
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/cache"
	"github.com/askholmes/holmes/pkg/model"
	"github.com/askholmes/holmes/pkg/usecase/questions"
)

func deleteCommand() *cli.Command {
	var (
		cfg        config
		questionID model.QuestionID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Question ID to delete",
			Destination: (*string)(&questionID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Delete a question",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			uc := questions.New(cfg.newQuestions(), cache.New(), &captureNotifier{}, sess.UserID)
			if err := uc.Delete(ctx, questionID); err != nil {
				return goerr.Wrap(err, "failed to delete question")
			}

			fmt.Fprintf(c.Root().Writer, "Question deleted: %s\n", questionID)
			return nil
		},
	}
}

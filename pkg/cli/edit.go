package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/cache"
	"github.com/askholmes/holmes/pkg/model"
	"github.com/askholmes/holmes/pkg/usecase/editor"
	"github.com/askholmes/holmes/pkg/usecase/questions"
)

func editCommand() *cli.Command {
	var (
		cfg        config
		questionID model.QuestionID
		question   string
		answer     string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Question ID to edit",
			Destination: (*string)(&questionID),
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "question",
			Aliases:     []string{"q"},
			Usage:       "New question text (keeps current when omitted)",
			Destination: &question,
		},
		&cli.StringFlag{
			Name:        "answer",
			Aliases:     []string{"a"},
			Usage:       "New answer text (keeps current when omitted)",
			Destination: &answer,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "edit",
		Usage: "Update an existing question",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			uc := questions.New(cfg.newQuestions(), cache.New(), &captureNotifier{}, sess.UserID)

			current, err := uc.Get(ctx, questionID)
			if err != nil {
				return goerr.Wrap(err, "failed to get question")
			}

			if question == "" {
				question = current.Question
			}
			if answer == "" {
				answer = current.Answer
			}

			ed := editor.New(uc)
			ed.OpenEdit(current)

			record, err := ed.Submit(ctx, question, answer)
			if err != nil {
				return goerr.Wrap(err, "failed to update question")
			}

			fmt.Fprintf(c.Root().Writer, "Question updated: %s\n", record.ID)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/cache"
	"github.com/askholmes/holmes/pkg/usecase/editor"
	"github.com/askholmes/holmes/pkg/usecase/questions"
	"github.com/askholmes/holmes/pkg/usecase/rag"
)

func newCommand() *cli.Command {
	var (
		cfg      config
		question string
		answer   string
		askDocs  bool
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "question",
			Aliases:     []string{"q"},
			Usage:       "Question text",
			Destination: &question,
			Required:    true,
		},
		&cli.StringFlag{
			Name:        "answer",
			Aliases:     []string{"a"},
			Usage:       "Answer text (optional)",
			Destination: &answer,
		},
		&cli.BoolFlag{
			Name:        "ask",
			Usage:       "Ask the document corpus to generate the answer",
			Destination: &askDocs,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "new",
		Usage: "Save a new question, optionally answering it from the corpus",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			notifier := &captureNotifier{}
			uc := questions.New(cfg.newQuestions(), cache.New(), notifier, sess.UserID)
			ed := editor.New(uc)

			if askDocs {
				ragUC := rag.New(cfg.newRAG(), notifier)

				sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
				sp.Suffix = " Consulting the archives..."
				sp.Start()
				generated, ran := ragUC.Ask(ctx, question)
				sp.Stop()

				if ran && generated == "" {
					return goerr.New(notifier.message())
				}
				if generated != "" {
					answer = generated
				}
			}

			ed.OpenCreate()
			record, err := ed.Submit(ctx, question, answer)
			if err != nil {
				return goerr.Wrap(err, "failed to create question")
			}

			fmt.Fprintf(c.Root().Writer, "Question created: %s\n", record.ID)
			return nil
		},
	}
}

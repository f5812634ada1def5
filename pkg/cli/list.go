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

func listCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List your questions, newest first",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			uc := questions.New(cfg.newQuestions(), cache.New(), &captureNotifier{}, sess.UserID)
			if err := uc.Load(ctx); err != nil {
				return goerr.Wrap(err, "failed to load questions")
			}

			records := uc.Cache().Records()
			if len(records) == 0 {
				fmt.Fprintf(c.Root().Writer, "No questions yet\n")
				return nil
			}

			for _, r := range records {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), summarize(r.Question, 60))
			}

			return nil
		},
	}
}

// summarize trims text to a single display line
func summarize(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}

func kindMark(kind model.NotifyKind) string {
	if kind == model.NotifyError {
		return "[error]"
	}
	return "[ok]"
}

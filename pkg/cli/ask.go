package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/usecase/rag"
)

func askCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:      "ask",
		Usage:     "Ask the document corpus a question without saving it",
		ArgsUsage: "<question>",
		Flags:     globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
			if question == "" {
				return goerr.New("question text is required")
			}

			notifier := &captureNotifier{}
			uc := rag.New(cfg.newRAG(), notifier)

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " Consulting the archives..."
			sp.Start()
			answer, _ := uc.Ask(ctx, question)
			sp.Stop()

			if answer == "" {
				return goerr.New(notifier.message())
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", answer)
			return nil
		},
	}
}

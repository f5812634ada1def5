package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/usecase/rag"
)

func reindexCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "reindex",
		Usage: "Rebuild the corpus index, e.g. after a partial upload failure",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc := rag.New(cfg.newRAG(), &captureNotifier{})

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " Indexing documents..."
			sp.Start()
			err := uc.Reindex(ctx)
			sp.Stop()

			if err != nil {
				return goerr.Wrap(err, "failed to reindex")
			}

			fmt.Fprintf(c.Root().Writer, "Indexing completed\n")
			return nil
		},
	}
}

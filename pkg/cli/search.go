package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/usecase/rag"
)

func searchCommand() *cli.Command {
	var (
		cfg   config
		query string
		topK  int64
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "query",
			Aliases:     []string{"q"},
			Usage:       "Search query",
			Destination: &query,
			Required:    true,
		},
		&cli.IntFlag{
			Name:        "top-k",
			Aliases:     []string{"k"},
			Usage:       "Number of chunks to retrieve",
			Value:       3,
			Destination: &topK,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "search",
		Usage: "Retrieve ranked passages without generating an answer",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc := rag.New(cfg.newRAG(), &captureNotifier{})

			chunks, err := uc.Search(ctx, query, int(topK))
			if err != nil {
				return goerr.Wrap(err, "failed to search chunks")
			}

			if len(chunks) == 0 {
				fmt.Fprintf(c.Root().Writer, "No matching passages\n")
				return nil
			}

			for i, chunk := range chunks {
				fmt.Fprintf(c.Root().Writer, "--- %d (document %s, chunk %d)\n%s\n",
					i+1, chunk.DocumentID, chunk.ChunkIndex, chunk.ChunkText)
			}

			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/model"
	"github.com/askholmes/holmes/pkg/usecase/rag"
)

func docsCommand() *cli.Command {
	return &cli.Command{
		Name:  "docs",
		Usage: "Inspect the document corpus",
		Commands: []*cli.Command{
			docsListCommand(),
			docsDeleteCommand(),
		},
	}
}

func docsListCommand() *cli.Command {
	var cfg config

	return &cli.Command{
		Name:  "list",
		Usage: "List indexed documents",
		Flags: globalFlags(&cfg),
		Action: func(ctx context.Context, c *cli.Command) error {
			notifier := &captureNotifier{}
			uc := rag.New(cfg.newRAG(), notifier)

			docs, err := uc.Documents(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to list documents")
			}

			if len(docs) == 0 {
				fmt.Fprintf(c.Root().Writer, "No documents indexed\n")
				return nil
			}

			for _, d := range docs {
				fmt.Fprintf(c.Root().Writer, "%s\t%s\t%d chunks\t%s\n",
					d.ID, d.Filename, d.ChunkCount, d.IndexedAt.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}

func docsDeleteCommand() *cli.Command {
	var (
		cfg   config
		docID model.DocumentID
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "id",
			Usage:       "Document ID to delete",
			Destination: (*string)(&docID),
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "delete",
		Usage: "Remove a document from the corpus",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc := rag.New(cfg.newRAG(), &captureNotifier{})
			if err := uc.DeleteDocument(ctx, docID); err != nil {
				return goerr.Wrap(err, "failed to delete document")
			}

			fmt.Fprintf(c.Root().Writer, "Document deleted: %s\n", docID)
			return nil
		},
	}
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/briandowns/spinner"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/askholmes/holmes/pkg/model"
	"github.com/askholmes/holmes/pkg/usecase/rag"
)

func uploadCommand() *cli.Command {
	var (
		cfg  config
		path string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "Path to the PDF book to upload",
			Destination: &path,
			Required:    true,
		},
	}
	flags = append(flags, globalFlags(&cfg)...)

	return &cli.Command{
		Name:  "upload",
		Usage: "Upload a book and reindex the corpus",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sess, err := cfg.currentSession()
			if err != nil {
				return err
			}

			notifier := &captureNotifier{}
			uc := rag.New(cfg.newRAG(), notifier)

			sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			sp.Suffix = " Uploading and indexing..."
			sp.Start()
			job, started := uc.UploadAndIndexFile(ctx, sess.UserID, path)
			sp.Stop()

			if !started {
				return goerr.New("another upload is already in flight")
			}
			if job == nil || job.Phase != model.PhaseDone {
				return goerr.New(notifier.message())
			}

			fmt.Fprintf(c.Root().Writer, "%s\n", notifier.message())
			return nil
		},
	}
}

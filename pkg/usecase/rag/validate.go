package rag

import (
	"context"
	"os"
	"path/filepath"

	"github.com/ledongthuc/pdf"
	"github.com/m-mizutani/goerr/v2"

	"github.com/askholmes/holmes/pkg/model"
)

// ValidateBook checks that the selected file parses as a PDF before any
// request is attempted. The .pdf selection filter is only a UI hint, so the
// content itself is verified with a local parse.
func ValidateBook(path string) error {
	f, r, err := pdf.Open(path)
	if err != nil {
		return goerr.Wrap(err, "file is not a readable PDF", goerr.V("path", path))
	}
	defer f.Close()

	if r.NumPage() < 1 {
		return goerr.New("PDF has no pages", goerr.V("path", path))
	}

	return nil
}

// UploadAndIndexFile validates the file at path and runs the upload
// pipeline on it. Rejections are posted as error notifications before any
// network call, matching UploadAndIndex's contract.
func (u *UseCase) UploadAndIndexFile(ctx context.Context, userID model.UserID, path string) (*model.UploadJob, bool) {
	info, err := os.Stat(path)
	if err != nil {
		u.notifier.Post("Cannot read the selected file: "+err.Error(), model.NotifyError)
		return nil, true
	}

	// Size is guarded again inside UploadAndIndex; checking here skips the
	// PDF parse for files that are over the limit anyway.
	if info.Size() <= MaxUploadSize {
		if err := ValidateBook(path); err != nil {
			u.notifier.Post(err.Error(), model.NotifyError)
			return nil, true
		}
	}

	f, err := os.Open(path)
	if err != nil {
		u.notifier.Post("Cannot read the selected file: "+err.Error(), model.NotifyError)
		return nil, true
	}
	defer f.Close()

	return u.UploadAndIndex(ctx, userID, filepath.Base(path), info.Size(), f)
}

package rag

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/askholmes/holmes/pkg/interfaces"
	"github.com/askholmes/holmes/pkg/model"
)

// MaxUploadSize is the client-side ceiling for one book upload
const MaxUploadSize = 50 << 20 // 50 MiB

// UseCase orchestrates the two RAG workflows: the single-shot document query
// and the two-phase upload-and-index pipeline. Each workflow has its own
// busy flag so they can run concurrently, but each is individually
// exclusive: re-invocation while busy is a no-op.
type UseCase struct {
	svc      interfaces.RAG
	notifier interfaces.Notifier

	mu        sync.Mutex
	asking    bool
	uploading bool
	job       *model.UploadJob
}

// New creates a RAG workflow UseCase
func New(svc interfaces.RAG, notifier interfaces.Notifier) *UseCase {
	return &UseCase{
		svc:      svc,
		notifier: notifier,
	}
}

// Ask queries the document corpus for an answer. The returned bool reports
// whether the workflow ran at all; it is false while another ask is in
// flight or for blank question text. On a failed query an error
// notification is posted and the answer is empty, so the caller leaves any
// previously entered answer untouched. The question cache is never touched.
func (u *UseCase) Ask(ctx context.Context, question string) (string, bool) {
	if strings.TrimSpace(question) == "" {
		return "", false
	}
	if !u.begin(&u.asking) {
		return "", false
	}
	defer u.end(&u.asking)

	answer, err := u.svc.Query(ctx, question)
	if err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return "", true
	}

	return answer, true
}

// AskBusy reports whether an ask workflow is in flight
func (u *UseCase) AskBusy() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.asking
}

// UploadAndIndex runs the two-phase pipeline: transfer the book, then
// trigger a reindex. The bool is false when another upload is already in
// flight (no-op). A nil job with a true bool means the file was rejected
// before any network call; the rejection has already been posted as an
// error notification.
//
// Upload and index outcomes are tracked separately: indexing is never
// attempted after a failed upload, and an indexing failure after a
// successful upload gets its own message because the book exists
// server-side even though it is not yet searchable.
func (u *UseCase) UploadAndIndex(ctx context.Context, userID model.UserID, filename string, size int64, r io.Reader) (*model.UploadJob, bool) {
	if !u.begin(&u.uploading) {
		return nil, false
	}
	defer u.end(&u.uploading)

	if size > MaxUploadSize {
		u.notifier.Post(
			fmt.Sprintf("File is too large (%d MiB). The limit is %d MiB.", size>>20, MaxUploadSize>>20),
			model.NotifyError,
		)
		return nil, true
	}

	job := &model.UploadJob{
		Filename: filename,
		Size:     size,
		Phase:    model.PhaseUploading,
	}
	u.setJob(job)

	if err := u.svc.UploadBook(ctx, userID, filename, r); err != nil {
		job.Phase = model.PhaseUploadFailed
		job.Err = err
		u.notifier.Post(fmt.Sprintf("Upload failed: %s", err.Error()), model.NotifyError)
		return job, true
	}

	job.Phase = model.PhaseIndexing
	if err := u.svc.Index(ctx); err != nil {
		job.Phase = model.PhaseIndexFailed
		job.Err = err
		u.notifier.Post(
			fmt.Sprintf("Upload succeeded, but indexing failed: %s. The book is stored; run a reindex to make it searchable.", err.Error()),
			model.NotifyError,
		)
		return job, true
	}

	job.Phase = model.PhaseDone
	u.notifier.Post("Book uploaded and indexed successfully", model.NotifySuccess)
	return job, true
}

// UploadBusy reports whether an upload pipeline is in flight
func (u *UseCase) UploadBusy() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.uploading
}

// Job returns the most recent upload job, or nil
func (u *UseCase) Job() *model.UploadJob {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.job
}

// Reindex triggers a full corpus reindex outside the upload pipeline, the
// retry path after a partial upload-and-index failure.
func (u *UseCase) Reindex(ctx context.Context) error {
	if err := u.svc.Index(ctx); err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return err
	}

	u.notifier.Post("Indexing completed", model.NotifySuccess)
	return nil
}

// Documents lists the indexed documents
func (u *UseCase) Documents(ctx context.Context) ([]*model.Document, error) {
	docs, err := u.svc.ListDocuments(ctx)
	if err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return nil, err
	}
	return docs, nil
}

// DeleteDocument removes a document from the corpus
func (u *UseCase) DeleteDocument(ctx context.Context, id model.DocumentID) error {
	if err := u.svc.DeleteDocument(ctx, id); err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return err
	}

	u.notifier.Post("Document deleted successfully", model.NotifySuccess)
	return nil
}

// Search retrieves ranked chunks for inspection
func (u *UseCase) Search(ctx context.Context, query string, topK int) ([]*model.Chunk, error) {
	chunks, err := u.svc.SearchChunks(ctx, query, topK)
	if err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return nil, err
	}
	return chunks, nil
}

func (u *UseCase) begin(flag *bool) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

func (u *UseCase) end(flag *bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	*flag = false
}

func (u *UseCase) setJob(job *model.UploadJob) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.job = job
}

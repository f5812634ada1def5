package model

type UploadPhase string

const (
	PhaseUploading    UploadPhase = "uploading"
	PhaseIndexing     UploadPhase = "indexing"
	PhaseDone         UploadPhase = "done"
	PhaseUploadFailed UploadPhase = "upload_failed"
	PhaseIndexFailed  UploadPhase = "index_failed"
)

// Terminal reports whether the phase is an end state of the pipeline.
func (p UploadPhase) Terminal() bool {
	switch p {
	case PhaseDone, PhaseUploadFailed, PhaseIndexFailed:
		return true
	}
	return false
}

// UploadJob tracks one upload-and-index pipeline run. It is transient and
// never persisted. The two failure phases are kept distinct: a document that
// uploaded but failed to index exists server-side and only needs a reindex,
// while a failed upload left the corpus untouched.
type UploadJob struct {
	Filename string
	Size     int64
	Phase    UploadPhase
	Err      error
}

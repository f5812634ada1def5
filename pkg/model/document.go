package model

import "time"

type DocumentID string

// Document is a source book tracked by the RAG backend. Uploaded documents
// become queryable only after a reindex.
type Document struct {
	ID         DocumentID `json:"id"`
	Filename   string     `json:"filename"`
	Title      string     `json:"title,omitempty"`
	FileHash   string     `json:"file_hash"`
	IndexedAt  time.Time  `json:"indexed_at"`
	ChunkCount int        `json:"chunk_count"`
}

// Chunk is a ranked passage returned by the diagnostic chunk search.
type Chunk struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"document_id"`
	ChunkText  string    `json:"chunk_text"`
	ChunkIndex int       `json:"chunk_index"`
	CreatedAt  time.Time `json:"created_at"`
}

package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/askholmes/holmes/pkg/adapter"
	"github.com/askholmes/holmes/pkg/interfaces"
	"github.com/askholmes/holmes/pkg/model"
)

const defaultTopK = 3

// RAG is a thin typed wrapper over the transport for /rag operations
type RAG struct {
	client *adapter.Client
}

// NewRAG creates a RAG facade
func NewRAG(client *adapter.Client) interfaces.RAG {
	return &RAG{client: client}
}

func (s *RAG) Index(ctx context.Context) error {
	_, err := s.client.Do(ctx, http.MethodPost, "/rag/index", nil, nil)
	return err
}

func (s *RAG) Query(ctx context.Context, question string) (string, error) {
	raw, err := s.client.Do(ctx, http.MethodPost, "/rag/query", map[string]string{"question": question}, nil)
	if err != nil {
		return "", err
	}

	var env struct {
		Answer string `json:"answer"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return "", goerr.Wrap(err, "failed to decode query response")
	}
	return env.Answer, nil
}

func (s *RAG) UploadBook(ctx context.Context, userID model.UserID, filename string, r io.Reader) error {
	_, err := s.client.Upload(ctx, "/rag/upload", "file", filename, r, identity(userID))
	return err
}

func (s *RAG) ListDocuments(ctx context.Context) ([]*model.Document, error) {
	raw, err := s.client.Do(ctx, http.MethodGet, "/rag/documents", nil, nil)
	if err != nil {
		return nil, err
	}

	var env struct {
		Documents []*model.Document `json:"documents"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, goerr.Wrap(err, "failed to decode documents response")
	}
	return env.Documents, nil
}

func (s *RAG) DeleteDocument(ctx context.Context, id model.DocumentID) error {
	_, err := s.client.Do(ctx, http.MethodDelete, "/rag/documents/"+string(id), nil, nil)
	return err
}

func (s *RAG) SearchChunks(ctx context.Context, query string, topK int) ([]*model.Chunk, error) {
	if topK <= 0 {
		topK = defaultTopK
	}

	body := map[string]any{"query": query, "top_k": topK}
	raw, err := s.client.Do(ctx, http.MethodPost, "/rag/search", body, nil)
	if err != nil {
		return nil, err
	}

	var env struct {
		Chunks []*model.Chunk `json:"chunks"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, goerr.Wrap(err, "failed to decode search response")
	}
	return env.Chunks, nil
}

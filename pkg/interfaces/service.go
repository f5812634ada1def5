package interfaces

import (
	"context"
	"io"

	"github.com/askholmes/holmes/pkg/model"
)

// Auth defines the authentication operations of the service
type Auth interface {
	// Login authenticates an existing user by email
	Login(ctx context.Context, email string) (*model.User, error)

	// Register creates a new user
	Register(ctx context.Context, email string) (*model.User, error)

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
}

// Questions defines the per-user question store operations. Every call is
// scoped by the identity header carrying userID.
type Questions interface {
	// List retrieves all questions of the user, newest first
	List(ctx context.Context, userID model.UserID) ([]*model.QuestionRecord, error)

	// Get retrieves a single question by ID
	Get(ctx context.Context, userID model.UserID, id model.QuestionID) (*model.QuestionRecord, error)

	// Create stores a new question; answer may be empty
	Create(ctx context.Context, userID model.UserID, question, answer string) (*model.QuestionRecord, error)

	// Update replaces question and answer of an existing record
	Update(ctx context.Context, userID model.UserID, id model.QuestionID, question, answer string) (*model.QuestionRecord, error)

	// Delete removes a question
	Delete(ctx context.Context, userID model.UserID, id model.QuestionID) error
}

// RAG defines the document corpus operations
type RAG interface {
	// Index triggers a full reindex of the corpus
	Index(ctx context.Context) error

	// Query asks the corpus for an answer to the question
	Query(ctx context.Context, question string) (string, error)

	// UploadBook transfers one source document to the corpus
	UploadBook(ctx context.Context, userID model.UserID, filename string, r io.Reader) error

	// ListDocuments retrieves all indexed documents
	ListDocuments(ctx context.Context) ([]*model.Document, error)

	// DeleteDocument removes a document from the corpus
	DeleteDocument(ctx context.Context, id model.DocumentID) error

	// SearchChunks retrieves ranked passages without generating an answer
	SearchChunks(ctx context.Context, query string, topK int) ([]*model.Chunk, error)
}

// Notifier posts transient user-facing outcome messages
type Notifier interface {
	Post(message string, kind model.NotifyKind)
}

package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

var (
	ErrEmptyQuestion = goerr.New("question text is empty")
)

type QuestionID string

// QuestionRecord is a user's question and its (possibly machine-generated)
// answer. Records are owned by the remote store; the client only mirrors
// server-confirmed state and never fabricates IDs or timestamps.
type QuestionRecord struct {
	ID        QuestionID `json:"id"`
	UserID    UserID     `json:"user_id"`
	Question  string     `json:"question"`
	Answer    string     `json:"answer,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ValidateQuestionText checks user-supplied question text before any
// network call is attempted.
func ValidateQuestionText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyQuestion
	}
	return nil
}

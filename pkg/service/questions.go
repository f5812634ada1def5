package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/goerr/v2"

	"github.com/askholmes/holmes/pkg/adapter"
	"github.com/askholmes/holmes/pkg/interfaces"
	"github.com/askholmes/holmes/pkg/model"
)

// IdentityHeader carries the authenticated user ID out-of-band; the request
// body schema stays the same regardless of caller.
const IdentityHeader = "X-User-ID"

// Questions is a thin typed wrapper over the transport for /questions
// operations. It has no state of its own.
type Questions struct {
	client *adapter.Client
}

// NewQuestions creates a Questions facade
func NewQuestions(client *adapter.Client) interfaces.Questions {
	return &Questions{client: client}
}

// questionBody is the create/update request schema. Answer marshals to null
// when absent, matching the store's contract.
type questionBody struct {
	Question string  `json:"question"`
	Answer   *string `json:"answer"`
}

type questionEnvelope struct {
	Question *model.QuestionRecord `json:"question"`
}

type questionsEnvelope struct {
	Questions []*model.QuestionRecord `json:"questions"`
}

func identity(userID model.UserID) map[string]string {
	return map[string]string{IdentityHeader: string(userID)}
}

func (s *Questions) List(ctx context.Context, userID model.UserID) ([]*model.QuestionRecord, error) {
	raw, err := s.client.Do(ctx, http.MethodGet, "/questions", nil, identity(userID))
	if err != nil {
		return nil, err
	}

	var env questionsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, goerr.Wrap(err, "failed to decode questions response")
	}
	return env.Questions, nil
}

func (s *Questions) Get(ctx context.Context, userID model.UserID, id model.QuestionID) (*model.QuestionRecord, error) {
	raw, err := s.client.Do(ctx, http.MethodGet, "/questions/"+string(id), nil, identity(userID))
	if err != nil {
		return nil, err
	}

	return decodeQuestion(raw)
}

func (s *Questions) Create(ctx context.Context, userID model.UserID, question, answer string) (*model.QuestionRecord, error) {
	raw, err := s.client.Do(ctx, http.MethodPost, "/questions", newQuestionBody(question, answer), identity(userID))
	if err != nil {
		return nil, err
	}

	return decodeQuestion(raw)
}

func (s *Questions) Update(ctx context.Context, userID model.UserID, id model.QuestionID, question, answer string) (*model.QuestionRecord, error) {
	raw, err := s.client.Do(ctx, http.MethodPut, "/questions/"+string(id), newQuestionBody(question, answer), identity(userID))
	if err != nil {
		return nil, err
	}

	return decodeQuestion(raw)
}

func (s *Questions) Delete(ctx context.Context, userID model.UserID, id model.QuestionID) error {
	_, err := s.client.Do(ctx, http.MethodDelete, "/questions/"+string(id), nil, identity(userID))
	return err
}

func newQuestionBody(question, answer string) questionBody {
	body := questionBody{Question: question}
	if answer != "" {
		body.Answer = &answer
	}
	return body
}

func decodeQuestion(raw json.RawMessage) (*model.QuestionRecord, error) {
	var env questionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, goerr.Wrap(err, "failed to decode question response")
	}
	if env.Question == nil {
		return nil, goerr.New("question missing in response")
	}
	return env.Question, nil
}

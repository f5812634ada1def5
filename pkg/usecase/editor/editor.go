package editor

import (
	"context"

	"github.com/m-mizutani/goerr/v2"

	"github.com/askholmes/holmes/pkg/model"
	"github.com/askholmes/holmes/pkg/usecase/questions"
)

var ErrNoOpenSession = goerr.New("no editing session is open")

// Mode is the state of the edit/create session
type Mode int

const (
	ModeIdle Mode = iota
	ModeCreating
	ModeEditing
)

func (m Mode) String() string {
	switch m {
	case ModeCreating:
		return "creating"
	case ModeEditing:
		return "editing"
	default:
		return "idle"
	}
}

// Session tracks whether the user is creating a new record or editing an
// existing one. At most one session is open at a time, and the editing
// surface is open exactly when the mode is non-idle.
type Session struct {
	mode      Mode
	questions *questions.UseCase

	// Captured at OpenEdit time. Submit uses this record's ID, never a
	// currently-displayed one, so a list mutation while the surface is
	// open cannot redirect the update.
	editing *model.QuestionRecord
}

// New creates an idle session
func New(q *questions.UseCase) *Session {
	return &Session{questions: q}
}

// OpenCreate opens the surface for a new record. It only transitions from
// Idle; reports whether the surface was opened.
func (s *Session) OpenCreate() bool {
	if s.mode != ModeIdle {
		return false
	}
	s.mode = ModeCreating
	return true
}

// OpenEdit opens the surface for an existing record from any state
func (s *Session) OpenEdit(record *model.QuestionRecord) {
	captured := *record
	s.editing = &captured
	s.mode = ModeEditing
}

// Close returns to Idle, used on cancel and on successful submit
func (s *Session) Close() {
	s.mode = ModeIdle
	s.editing = nil
}

// Submit dispatches to create or update depending on the open session. On
// success the session closes; on failure it stays open so the user's input
// survives for a retry.
func (s *Session) Submit(ctx context.Context, question, answer string) (*model.QuestionRecord, error) {
	switch s.mode {
	case ModeCreating:
		record, err := s.questions.Create(ctx, question, answer)
		if err != nil {
			return nil, err
		}
		s.Close()
		return record, nil

	case ModeEditing:
		record, err := s.questions.Update(ctx, s.editing.ID, question, answer)
		if err != nil {
			return nil, err
		}
		s.Close()
		return record, nil

	default:
		return nil, ErrNoOpenSession
	}
}

// Mode returns the current session state
func (s *Session) Mode() Mode {
	return s.mode
}

// IsOpen reports whether the editing surface is open
func (s *Session) IsOpen() bool {
	return s.mode != ModeIdle
}

// Editing returns the record captured at OpenEdit time, or nil
func (s *Session) Editing() *model.QuestionRecord {
	return s.editing
}

package questions

import (
	"context"

	"github.com/askholmes/holmes/pkg/cache"
	"github.com/askholmes/holmes/pkg/interfaces"
	"github.com/askholmes/holmes/pkg/model"
)

// UseCase coordinates the question store facade, the local cache and the
// notification queue. The cache changes only after the corresponding remote
// call has confirmed; a failed call leaves it untouched.
type UseCase struct {
	svc      interfaces.Questions
	cache    *cache.QuestionCache
	notifier interfaces.Notifier
	userID   model.UserID
}

// New creates a question UseCase scoped to one authenticated user
func New(svc interfaces.Questions, c *cache.QuestionCache, notifier interfaces.Notifier, userID model.UserID) *UseCase {
	return &UseCase{
		svc:      svc,
		cache:    c,
		notifier: notifier,
		userID:   userID,
	}
}

// Load replaces the cache with a full fetch. On failure the cache is put
// into an explicit error state instead of being emptied.
func (u *UseCase) Load(ctx context.Context) error {
	records, err := u.svc.List(ctx, u.userID)
	if err != nil {
		u.cache.SetLoadError(err)
		return err
	}

	u.cache.Replace(records)
	return nil
}

// Create stores a new question and prepends the confirmed record
func (u *UseCase) Create(ctx context.Context, question, answer string) (*model.QuestionRecord, error) {
	if err := model.ValidateQuestionText(question); err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return nil, err
	}

	record, err := u.svc.Create(ctx, u.userID, question, answer)
	if err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return nil, err
	}

	u.cache.InsertConfirmed(record)
	u.notifier.Post("Question added successfully", model.NotifySuccess)
	return record, nil
}

// Update replaces an existing question in place
func (u *UseCase) Update(ctx context.Context, id model.QuestionID, question, answer string) (*model.QuestionRecord, error) {
	if err := model.ValidateQuestionText(question); err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return nil, err
	}

	record, err := u.svc.Update(ctx, u.userID, id, question, answer)
	if err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return nil, err
	}

	u.cache.ReplaceConfirmed(id, record)
	u.notifier.Post("Question updated successfully", model.NotifySuccess)
	return record, nil
}

// Delete removes a question. The cached record stays visible until the
// delete has round-tripped, so a failed delete never hides a live record.
func (u *UseCase) Delete(ctx context.Context, id model.QuestionID) error {
	if err := u.svc.Delete(ctx, u.userID, id); err != nil {
		u.notifier.Post(err.Error(), model.NotifyError)
		return err
	}

	u.cache.RemoveConfirmed(id)
	u.notifier.Post("Question deleted successfully", model.NotifySuccess)
	return nil
}

// Get retrieves one question from the remote store
func (u *UseCase) Get(ctx context.Context, id model.QuestionID) (*model.QuestionRecord, error) {
	return u.svc.Get(ctx, u.userID, id)
}

// Cache exposes the local mirror for read access
func (u *UseCase) Cache() *cache.QuestionCache {
	return u.cache
}

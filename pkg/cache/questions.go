package cache

import (
	"github.com/askholmes/holmes/pkg/model"
)

// QuestionCache is the in-memory mirror of the user's questions, ordered
// newest first. Records enter only through server-confirmed mutations; there
// are no speculative inserts and no client-generated IDs.
//
// All mutations happen on the single coordinating goroutine of a workflow,
// so the cache carries no locking of its own.
type QuestionCache struct {
	records []*model.QuestionRecord
	loadErr error
	loaded  bool
}

// New creates an empty, not-yet-loaded cache
func New() *QuestionCache {
	return &QuestionCache{}
}

// Replace swaps the whole cache for a fresh full-fetch result and clears any
// previous load error.
func (c *QuestionCache) Replace(records []*model.QuestionRecord) {
	c.records = append([]*model.QuestionRecord(nil), records...)
	c.loadErr = nil
	c.loaded = true
}

// SetLoadError marks the cache as failed-to-load. This state is distinct
// from an empty cache so callers can tell "no questions" from "fetch failed".
func (c *QuestionCache) SetLoadError(err error) {
	c.loadErr = err
	c.loaded = false
}

// LoadErr returns the error of the last failed full fetch, if any
func (c *QuestionCache) LoadErr() error {
	return c.loadErr
}

// Loaded reports whether the cache holds a successful full-fetch result
func (c *QuestionCache) Loaded() bool {
	return c.loaded
}

// InsertConfirmed prepends a server-confirmed new record
func (c *QuestionCache) InsertConfirmed(record *model.QuestionRecord) {
	c.records = append([]*model.QuestionRecord{record}, c.records...)
}

// ReplaceConfirmed swaps the record with the same ID in place. A missing ID
// is a no-op, not an error: a concurrent delete may have raced the update.
func (c *QuestionCache) ReplaceConfirmed(id model.QuestionID, record *model.QuestionRecord) {
	for i, r := range c.records {
		if r.ID == id {
			c.records[i] = record
			return
		}
	}
}

// RemoveConfirmed drops the record with the given ID. Called only after the
// delete has round-tripped successfully.
func (c *QuestionCache) RemoveConfirmed(id model.QuestionID) {
	filtered := c.records[:0]
	for _, r := range c.records {
		if r.ID != id {
			filtered = append(filtered, r)
		}
	}
	c.records = filtered
}

// Get returns the cached record with the given ID, or nil
func (c *QuestionCache) Get(id model.QuestionID) *model.QuestionRecord {
	for _, r := range c.records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Records returns a copy of the cached records, newest first
func (c *QuestionCache) Records() []*model.QuestionRecord {
	return append([]*model.QuestionRecord(nil), c.records...)
}

// Len returns the number of cached records
func (c *QuestionCache) Len() int {
	return len(c.records)
}

package model

import "time"

type UserID string

// User is the authenticated identity. It is supplied once at session start
// and scopes every question operation via the identity header.
type User struct {
	ID        UserID    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

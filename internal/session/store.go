// Package session keeps authenticated sessions on the server side. The
// browser only holds a signed reference to a session id; the Store decides
// whether that id still maps to a user.
package session

import (
	"context"
	"time"
)

// Data is what a session remembers about its user.
type Data struct {
	UserID    int64     `json:"userId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Expired reports whether the session is past its lifetime at now.
func (d Data) Expired(now time.Time) bool {
	return !d.ExpiresAt.After(now)
}

// Store persists sessions by id.
type Store interface {
	// Get returns nil, nil when the session is missing or expired.
	Get(ctx context.Context, sid string) (*Data, error)
	// Save creates or replaces the session. It returns once the write is durable.
	Save(ctx context.Context, sid string, d Data) error
	// Destroy removes the session; unknown ids are not an error.
	Destroy(ctx context.Context, sid string) error
}

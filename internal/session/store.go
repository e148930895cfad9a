// Package session stores the navigation state of outstanding signal
// messages. A session is created only by a successful dispatch and is keyed
// by the delivered message; interaction events never create sessions.
package session

import (
	"context"

	"signal-relay/internal/domain"
)

// Store is the key-value mapping from session key to session state.
//
// Create fails with domain.ErrDuplicateSession when the key is already
// present. Get and SetCurrentView fail with domain.ErrSessionNotFound for
// unknown or evicted keys. SetCurrentView is the only mutation after
// creation.
type Store interface {
	Create(ctx context.Context, sess domain.Session) error
	Get(ctx context.Context, key string) (domain.Session, error)
	SetCurrentView(ctx context.Context, key string, view domain.View) error
}

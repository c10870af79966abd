package blob

import (
	"context"
	"errors"

	"github.com/entnt/dental-center/internal/repository"
	apperrors "github.com/entnt/dental-center/pkg/errors"
)

// SessionStore keeps the current user-id marker in its own slot. The
// persisted document is the bare id string.
type SessionStore struct {
	slot repository.Slot
}

func NewSessionStore(slot repository.Slot) *SessionStore {
	return &SessionStore{slot: slot}
}

func (s *SessionStore) Load(ctx context.Context) (string, error) {
	payload, err := s.slot.Read(ctx)
	if errors.Is(err, repository.ErrSlotEmpty) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.Storage(err)
	}
	return string(payload), nil
}

func (s *SessionStore) Save(ctx context.Context, userID string) error {
	if err := s.slot.Write(ctx, []byte(userID)); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (s *SessionStore) Clear(ctx context.Context) error {
	if err := s.slot.Clear(ctx); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

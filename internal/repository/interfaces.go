package repository

import (
	"context"
	"errors"

	"github.com/entnt/dental-center/internal/model"
)

// ErrSlotEmpty is returned by Slot.Read when the slot holds no document.
var ErrSlotEmpty = errors.New("slot is empty")

// Slot is a named location in durable local storage holding one serialized
// document. Write replaces the prior content in full; there is no partial
// write, merge or versioning.
type Slot interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
	Clear(ctx context.Context) error
}

// DataStore loads and saves the whole AppData aggregate.
type DataStore interface {
	Load(ctx context.Context) (*model.AppData, error)
	Save(ctx context.Context, data *model.AppData) error
}

// SessionStore holds at most one active user-id marker, in a slot separate
// from the data blob. Load returns "" when no session exists.
type SessionStore interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, userID string) error
	Clear(ctx context.Context) error
}

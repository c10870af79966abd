// Package blob persists the AppData aggregate and the session marker, each
// in its own durable slot.
package blob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/entnt/dental-center/internal/model"
	"github.com/entnt/dental-center/internal/repository"
	apperrors "github.com/entnt/dental-center/pkg/errors"
	"github.com/entnt/dental-center/pkg/logger"
)

// Slot names, one document each.
const (
	DataSlotName    = "dental-center-data"
	SessionSlotName = "dental-center-session"
)

type Store struct {
	slot   repository.Slot
	logger *logger.Logger
}

func NewStore(slot repository.Slot, log *logger.Logger) *Store {
	return &Store{slot: slot, logger: log}
}

// Load returns the persisted aggregate. An empty slot is seeded with the
// fixed demo dataset, which is durably written before being returned. An
// unreadable blob is treated the same way, with a loud diagnostic: losing
// the demo state beats crashing on every start.
func (s *Store) Load(ctx context.Context) (*model.AppData, error) {
	payload, err := s.slot.Read(ctx)
	if errors.Is(err, repository.ErrSlotEmpty) {
		return s.seed(ctx)
	}
	if err != nil {
		return nil, apperrors.Storage(err)
	}

	var data model.AppData
	if err := json.Unmarshal(payload, &data); err != nil {
		s.logger.Error(apperrors.CorruptState(err), "data blob is not deserializable, discarding and reseeding")
		return s.seed(ctx)
	}
	return &data, nil
}

// Save serializes the aggregate and overwrites the slot unconditionally.
func (s *Store) Save(ctx context.Context, data *model.AppData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return apperrors.Storage(fmt.Errorf("failed to serialize app data: %w", err))
	}
	if err := s.slot.Write(ctx, payload); err != nil {
		return apperrors.Storage(err)
	}
	return nil
}

func (s *Store) seed(ctx context.Context) (*model.AppData, error) {
	data := SeedData()
	if err := s.Save(ctx, data); err != nil {
		return nil, fmt.Errorf("failed to persist seed data: %w", err)
	}
	s.logger.Info("initialized data slot with seed dataset")
	return data, nil
}

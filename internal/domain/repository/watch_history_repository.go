// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// WatchHistoryRepository reads a user's watch history. Entries are appended
// by the playback collaborator; this backend only lists them.
type WatchHistoryRepository interface {
	// ListByUserID returns the user's watch entries, most recent first,
	// joined with the video metadata a history listing needs.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error)
}

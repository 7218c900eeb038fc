// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"vidtube/internal/domain/entity"
	"vidtube/internal/domain/repository"
	"vidtube/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// watchHistoryRepository implements the repository.WatchHistoryRepository interface.
type watchHistoryRepository struct {
	db *gorm.DB
}

// NewWatchHistoryRepository is the constructor for watchHistoryRepository.
func NewWatchHistoryRepository(db *gorm.DB) repository.WatchHistoryRepository {
	return &watchHistoryRepository{
		db: db,
	}
}

// watchEntryRow is the join projection for a history listing.
type watchEntryRow struct {
	VideoID       uuid.UUID
	Title         string
	ThumbnailURL  string
	OwnerUserName string
	WatchedAt     time.Time
}

// ListByUserID returns the user's watch entries, most recent first, joined
// with the video and owner metadata a history listing needs.
func (repo *watchHistoryRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.WatchEntry, error) {
	var rows []watchEntryRow

	err := repo.db.WithContext(ctx).
		Model(&model.WatchHistoryModel{}).
		Select("watch_history.video_id AS video_id, videos.title AS title, videos.thumbnail_url AS thumbnail_url, users.user_name AS owner_user_name, watch_history.watched_at AS watched_at").
		Joins("JOIN videos ON videos.id = watch_history.video_id").
		Joins("JOIN users ON users.id = videos.owner_id").
		Where("watch_history.user_id = ?", userID).
		Order("watch_history.watched_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list watch history")
	}

	entries := make([]*entity.WatchEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, &entity.WatchEntry{
			VideoID:       row.VideoID,
			Title:         row.Title,
			ThumbnailURL:  row.ThumbnailURL,
			OwnerUserName: row.OwnerUserName,
			WatchedAt:     row.WatchedAt,
		})
	}

	return entries, nil
}

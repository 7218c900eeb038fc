package entity

import (
	"time"

	"github.com/google/uuid"
)

// WatchEntry is one item of a user's watch history, joined with the minimal
// video metadata a history listing needs. Appending entries is owned by the
// playback side; this backend only reads them.
type WatchEntry struct {
	VideoID       uuid.UUID
	Title         string
	ThumbnailURL  string
	OwnerUserName string
	WatchedAt     time.Time
}

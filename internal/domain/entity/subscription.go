// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Subscription represents one user (the subscriber) following another user's
// channel. The (ChannelID, SubscriberID) pair is unique.
type Subscription struct {
	ID           uuid.UUID // The unique ID for this subscription record.
	ChannelID    uuid.UUID // The user being subscribed to.
	SubscriberID uuid.UUID // The user who subscribed.
	CreatedAt    time.Time // Timestamp of when the subscription was created.
}

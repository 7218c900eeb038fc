// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"github.com/google/uuid"
)

// SubscriptionRepository exposes the subscriber aggregates a channel profile
// needs. Creating and removing subscriptions is owned by the video side and
// is not part of this backend.
type SubscriptionRepository interface {
	// CountSubscribers returns how many users subscribe to the given channel.
	CountSubscribers(ctx context.Context, channelID uuid.UUID) (int64, error)

	// CountSubscriptions returns how many channels the given user subscribes to.
	CountSubscriptions(ctx context.Context, subscriberID uuid.UUID) (int64, error)

	// IsSubscribed reports whether subscriberID subscribes to channelID.
	IsSubscribed(ctx context.Context, channelID, subscriberID uuid.UUID) (bool, error)
}

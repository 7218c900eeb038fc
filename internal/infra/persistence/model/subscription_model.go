package model

import (
	"time"

	"github.com/google/uuid"
)

// SubscriptionModel mirrors the 'subscriptions' table. A row means
// SubscriberID follows ChannelID; the pair is unique.
type SubscriptionModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ChannelID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_channel_subscriber;index"`
	SubscriberID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_channel_subscriber;index"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (SubscriptionModel) TableName() string {
	return "subscriptions"
}

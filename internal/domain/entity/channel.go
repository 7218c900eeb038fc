package entity

import "github.com/google/uuid"

// ChannelProfile is a read model combining a user's public channel fields with
// subscriber aggregates. It is produced by the profile query layer and never
// persisted as its own record.
type ChannelProfile struct {
	ID                uuid.UUID
	UserName          string
	FullName          string
	Email             string
	AvatarURL         string
	CoverImageURL     string
	SubscriberCount   int64 // How many users subscribe to this channel.
	SubscribedToCount int64 // How many channels this user subscribes to.
	IsSubscribed      bool  // Whether the viewing user subscribes to this channel.
}

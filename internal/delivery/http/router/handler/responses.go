package handler

import (
	"time"

	"vidtube/internal/domain/entity"

	"github.com/google/uuid"
)

// userResponse is the public JSON shape of an account. Credential and
// session fields never appear here.
type userResponse struct {
	ID            uuid.UUID `json:"id"`
	UserName      string    `json:"userName"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	AvatarURL     string    `json:"avatar"`
	CoverImageURL string    `json:"coverImage,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func toUserResponse(user *entity.User) *userResponse {
	if user == nil {
		return nil
	}

	return &userResponse{
		ID:            user.ID,
		UserName:      user.UserName,
		Email:         user.Email,
		FullName:      user.FullName,
		AvatarURL:     user.AvatarURL,
		CoverImageURL: user.CoverImageURL,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

// channelResponse is the public JSON shape of a channel page.
type channelResponse struct {
	ID                uuid.UUID `json:"id"`
	UserName          string    `json:"userName"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	AvatarURL         string    `json:"avatar"`
	CoverImageURL     string    `json:"coverImage,omitempty"`
	SubscriberCount   int64     `json:"subscriberCount"`
	SubscribedToCount int64     `json:"channelsSubscribedToCount"`
	IsSubscribed      bool      `json:"isSubscribed"`
}

func toChannelResponse(profile *entity.ChannelProfile) *channelResponse {
	return &channelResponse{
		ID:                profile.ID,
		UserName:          profile.UserName,
		FullName:          profile.FullName,
		Email:             profile.Email,
		AvatarURL:         profile.AvatarURL,
		CoverImageURL:     profile.CoverImageURL,
		SubscriberCount:   profile.SubscriberCount,
		SubscribedToCount: profile.SubscribedToCount,
		IsSubscribed:      profile.IsSubscribed,
	}
}

// watchEntryResponse is one row of a watch history listing.
type watchEntryResponse struct {
	VideoID       uuid.UUID `json:"videoId"`
	Title         string    `json:"title"`
	ThumbnailURL  string    `json:"thumbnail"`
	OwnerUserName string    `json:"ownerUserName"`
	WatchedAt     time.Time `json:"watchedAt"`
}

func toWatchHistoryResponse(entries []*entity.WatchEntry) []*watchEntryResponse {
	out := make([]*watchEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, &watchEntryResponse{
			VideoID:       entry.VideoID,
			Title:         entry.Title,
			ThumbnailURL:  entry.ThumbnailURL,
			OwnerUserName: entry.OwnerUserName,
			WatchedAt:     entry.WatchedAt,
		})
	}

	return out
}

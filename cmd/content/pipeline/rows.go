package pipeline

import "time"

// OwnerSummary is the only user projection listings expose.
type OwnerSummary struct {
	UserName  string `json:"username"`
	FullName  string `json:"fullName"`
	AvatarUrl string `json:"avatar"`
}

// ChannelSummary is an owner summary with the viewer-relative
// subscription fields of that user.
type ChannelSummary struct {
	UserName        string `json:"username"`
	FullName        string `json:"fullName"`
	AvatarUrl       string `json:"avatar"`
	SubscriberCount int64  `json:"subscribersCount"`
	IsSubscribed    bool   `json:"isSubscribed"`
}

type VideoRow struct {
	VideoId      string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Duration     float64      `json:"duration"`
	Views        int64        `json:"views"`
	IsPublished  bool         `json:"isPublished"`
	VideoFileUrl string       `json:"videoFile"`
	ThumbnailUrl string       `json:"thumbnail"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
	Owner        OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount   int64        `json:"likesCount"`
	IsLiked      bool         `json:"isLiked"`
}

type VideoDetailRow struct {
	VideoId      string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Duration     float64        `json:"duration"`
	Views        int64          `json:"views"`
	IsPublished  bool           `json:"isPublished"`
	VideoFileUrl string         `json:"videoFile"`
	ThumbnailUrl string         `json:"thumbnail"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Owner        ChannelSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount   int64          `json:"likesCount"`
	IsLiked      bool           `json:"isLiked"`
}

type PlaylistVideoRow struct {
	VideoRow
	Position int64 `json:"position"`
}

// DashboardVideoRow is the owner's own view of a video, published or not.
type DashboardVideoRow struct {
	VideoId      string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Duration     float64   `json:"duration"`
	Views        int64     `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	ThumbnailUrl string    `json:"thumbnail"`
	CreatedAt    time.Time `json:"createdAt"`
	LikesCount   int64     `json:"likesCount"`
}

type CommentRow struct {
	CommentId  string       `json:"id"`
	VideoId    string       `json:"video"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
}

type TweetRow struct {
	TweetId    string       `json:"id"`
	Content    string       `json:"content"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
	Owner      OwnerSummary `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
}

type PlaylistRow struct {
	PlaylistId  string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	TotalVideos int64     `json:"totalVideos"`
	TotalViews  int64     `json:"totalViews"`
}

type PlaylistDetailRow struct {
	PlaylistId  string                  `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	Owner       OwnerSummary            `gorm:"embedded;embeddedPrefix:owner_" json:"owner"`
	TotalVideos int64                   `json:"totalVideos"`
	TotalViews  int64                   `json:"totalViews"`
	Videos      *Page[PlaylistVideoRow] `gorm:"-" json:"videos"`
}

type SubscriberRow struct {
	SubscriptionId string         `json:"id"`
	SubscriberId   string         `json:"subscriberId"`
	Subscriber     ChannelSummary `gorm:"embedded;embeddedPrefix:subscriber_" json:"subscriber"`
	CreatedAt      time.Time      `json:"subscribedAt"`
}

type ChannelRow struct {
	SubscriptionId string         `json:"id"`
	ChannelId      string         `json:"channelId"`
	Channel        ChannelSummary `gorm:"embedded;embeddedPrefix:channel_" json:"channel"`
	CreatedAt      time.Time      `json:"subscribedAt"`
}

type ChannelStatsRow struct {
	UserId          string `json:"id"`
	UserName        string `json:"username"`
	FullName        string `json:"fullName"`
	AvatarUrl       string `json:"avatar"`
	SubscriberCount int64  `json:"totalSubscribers"`
	TotalVideos     int64  `json:"totalVideos"`
	TotalViews      int64  `json:"totalViews"`
	TotalLikes      int64  `json:"totalLikes"`
}

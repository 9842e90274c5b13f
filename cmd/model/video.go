package model

import "time"

type Video struct {
	VideoId      string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerId      string    `gorm:"size:36;not null;index" json:"owner"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Duration     float64   `json:"duration"`
	Views        int64     `gorm:"not null;default:0" json:"views"`
	IsPublished  bool      `gorm:"not null;index" json:"isPublished"`
	VideoFileId  string    `gorm:"size:255" json:"-"`
	VideoFileUrl string    `gorm:"size:512" json:"videoFile"`
	ThumbnailId  string    `gorm:"size:255" json:"-"`
	ThumbnailUrl string    `gorm:"size:512" json:"thumbnail"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (*Video) Kind() Kind        { return KindVideo }
func (v *Video) GetID() string   { return v.VideoId }
func (v *Video) SetID(id string) { v.VideoId = id }
func (v *Video) OwnerID() string { return v.OwnerId }
func (*Video) TableName() string { return KindVideo.Table() }

type Tweet struct {
	TweetId   string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerId   string    `gorm:"size:36;not null;index" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (*Tweet) Kind() Kind        { return KindTweet }
func (t *Tweet) GetID() string   { return t.TweetId }
func (t *Tweet) SetID(id string) { t.TweetId = id }
func (t *Tweet) OwnerID() string { return t.OwnerId }
func (*Tweet) TableName() string { return KindTweet.Table() }

type Playlist struct {
	PlaylistId  string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerId     string    `gorm:"size:36;not null;index" json:"owner"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (*Playlist) Kind() Kind        { return KindPlaylist }
func (p *Playlist) GetID() string   { return p.PlaylistId }
func (p *Playlist) SetID(id string) { p.PlaylistId = id }
func (p *Playlist) OwnerID() string { return p.OwnerId }
func (*Playlist) TableName() string { return KindPlaylist.Table() }

// PlaylistVideo is one membership row. The composite key keeps the video
// list of a playlist free of duplicates, Position keeps insertion order.
type PlaylistVideo struct {
	PlaylistId string    `gorm:"primaryKey;size:36"`
	VideoId    string    `gorm:"primaryKey;size:36;index"`
	Position   int64     `gorm:"not null"`
	CreatedAt  time.Time
}

func (*PlaylistVideo) TableName() string { return "playlist_videos" }

package model

import "time"

type Comment struct {
	CommentId string    `gorm:"primaryKey;size:36" json:"id"`
	VideoId   string    `gorm:"size:36;not null;index" json:"video"`
	OwnerId   string    `gorm:"size:36;not null;index" json:"owner"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (*Comment) Kind() Kind        { return KindComment }
func (c *Comment) GetID() string   { return c.CommentId }
func (c *Comment) SetID(id string) { c.CommentId = id }
func (c *Comment) OwnerID() string { return c.OwnerId }
func (*Comment) TableName() string { return KindComment.Table() }

// Like points at exactly one video, comment or tweet through TargetKind and
// TargetId. The unique index allows one like per (user, target).
type Like struct {
	LikeId     string    `gorm:"primaryKey;size:36" json:"id"`
	LikedBy    string    `gorm:"size:36;not null;uniqueIndex:idx_like_target,priority:1" json:"likedBy"`
	TargetKind Kind      `gorm:"size:16;not null;uniqueIndex:idx_like_target,priority:2;index:idx_like_lookup,priority:1" json:"targetKind"`
	TargetId   string    `gorm:"size:36;not null;uniqueIndex:idx_like_target,priority:3;index:idx_like_lookup,priority:2" json:"targetId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (*Like) Kind() Kind        { return KindLike }
func (l *Like) GetID() string   { return l.LikeId }
func (l *Like) SetID(id string) { l.LikeId = id }
func (l *Like) OwnerID() string { return l.LikedBy }
func (*Like) TableName() string { return KindLike.Table() }

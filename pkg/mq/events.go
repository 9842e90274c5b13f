package mq

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	VideoPublished      EventType = "video.published"
	VideoDeleted        EventType = "video.deleted"
	CommentAdded        EventType = "comment.added"
	LikeToggled         EventType = "like.toggled"
	SubscriptionToggled EventType = "subscription.toggled"
)

// ContentEvent 内容事件
type ContentEvent struct {
	EventID    string    `json:"event_id"`
	Type       EventType `json:"type"`
	ActorID    string    `json:"actor_id"`    // 操作用户ID
	TargetKind string    `json:"target_kind"` // video, comment, tweet, user
	TargetID   string    `json:"target_id"`
	Active     bool      `json:"active"` // toggles: state after the action
	Timestamp  int64     `json:"timestamp"`
}

func NewContentEvent(typ EventType, actorID, targetKind, targetID string) *ContentEvent {
	return &ContentEvent{
		EventID:    uuid.NewString(),
		Type:       typ,
		ActorID:    actorID,
		TargetKind: targetKind,
		TargetID:   targetID,
		Timestamp:  time.Now().Unix(),
	}
}

const (
	ContentEventExchange = "content_events"
	ContentEventQueue    = "content_event_queue"
)

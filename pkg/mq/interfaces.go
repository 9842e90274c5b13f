package mq

import "context"

// EventPublisher 事件发布接口
type EventPublisher interface {
	PublishContentEvent(ctx context.Context, event *ContentEvent) error
}

var _ EventPublisher = (*Producer)(nil)

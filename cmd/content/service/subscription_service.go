package service

import (
	"context"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
)

type SubscriptionService struct {
	ctx  context.Context
	deps *Deps
}

func NewSubscriptionService(ctx context.Context, deps *Deps) *SubscriptionService {
	return &SubscriptionService{ctx: ctx, deps: deps}
}

// ToggleSubscription subscribes viewer to channelID or cancels an existing
// subscription. It returns whether viewer is subscribed afterwards.
func (s *SubscriptionService) ToggleSubscription(viewer, channelID string) (bool, error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return false, err
	}
	if channelID, err = mustExist(s.ctx, s.deps.Store, model.KindUser, channelID); err != nil {
		return false, err
	}
	if channelID == viewer {
		return false, errno.ParamErr.WithMessage("cannot subscribe to your own channel")
	}

	subscribed := true
	existing, err := s.deps.Store.FindOne(s.ctx, model.KindSubscription, db.Cond{
		"subscriber_id": viewer, "channel_id": channelID,
	})
	switch {
	case err == nil:
		subscribed = false
		_, err = s.deps.Execute(s.ctx, Mutation{
			Kind:   model.KindSubscription,
			ID:     existing.GetID(),
			Viewer: viewer,
			Action: ActionDelete,
			Apply: func(ctx context.Context, target model.Entity) error {
				_, err := s.deps.Store.DeleteByID(ctx, model.KindSubscription, target.GetID())
				return err
			},
		})
	case errno.Is(err, errno.NotFoundErr):
		err = s.deps.Store.CreateOne(s.ctx, &model.Subscription{SubscriberId: viewer, ChannelId: channelID})
		if errno.Is(err, errno.ConflictErr) {
			err = nil
		}
	}
	if err != nil {
		return false, err
	}
	if err = s.deps.publish(s.ctx, mq.SubscriptionToggled, viewer, string(model.KindUser), channelID, subscribed); err != nil {
		return false, err
	}
	return subscribed, nil
}

// ChannelSubscribers lists who subscribes to channelID. The subscription
// fields of each subscriber are relative to viewer.
func (s *SubscriptionService) ChannelSubscribers(viewer, channelID string, q pipeline.ListQuery) (*pipeline.Page[pipeline.SubscriberRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	if channelID, err = mustExist(s.ctx, s.deps.Store, model.KindUser, channelID); err != nil {
		return nil, err
	}
	stages, err := pipeline.ChannelSubscribers(viewer, channelID, q)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.SubscriberRow](s.ctx, s.deps.Store, model.KindSubscription, stages)
}

// SubscribedChannels lists the channels subscriberID follows.
func (s *SubscriptionService) SubscribedChannels(viewer, subscriberID string, q pipeline.ListQuery) (*pipeline.Page[pipeline.ChannelRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	if subscriberID, err = mustExist(s.ctx, s.deps.Store, model.KindUser, subscriberID); err != nil {
		return nil, err
	}
	stages, err := pipeline.SubscribedChannels(viewer, subscriberID, q)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.ChannelRow](s.ctx, s.deps.Store, model.KindSubscription, stages)
}

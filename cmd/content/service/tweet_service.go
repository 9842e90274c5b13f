package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
)

type TweetService struct {
	ctx  context.Context
	deps *Deps
}

func NewTweetService(ctx context.Context, deps *Deps) *TweetService {
	return &TweetService{ctx: ctx, deps: deps}
}

func (s *TweetService) CreateTweet(viewer, content string) (*model.Tweet, error) {
	tweet := &model.Tweet{Content: strings.TrimSpace(content)}
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindTweet,
		Viewer: viewer,
		Action: ActionCreate,
		Validate: func() error {
			owner, err := viewerID(viewer)
			if err != nil {
				return err
			}
			tweet.OwnerId = owner
			return required("content", tweet.Content)
		},
		Apply: func(ctx context.Context, _ model.Entity) error {
			return s.deps.Store.CreateOne(ctx, tweet)
		},
	})
	if err != nil {
		return nil, err
	}
	return tweet, nil
}

// ListUserTweets lists the tweets of ownerID, who must exist.
func (s *TweetService) ListUserTweets(viewer, ownerID string, q pipeline.ListQuery) (*pipeline.Page[pipeline.TweetRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	if ownerID, err = mustExist(s.ctx, s.deps.Store, model.KindUser, ownerID); err != nil {
		return nil, err
	}
	stages, err := pipeline.UserTweets(viewer, ownerID, q)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.TweetRow](s.ctx, s.deps.Store, model.KindTweet, stages)
}

func (s *TweetService) UpdateTweet(viewer, tweetID, content string) (*model.Tweet, error) {
	e, err := updateContent(s.ctx, s.deps, model.KindTweet, viewer, tweetID, content)
	if err != nil {
		return nil, err
	}
	return e.(*model.Tweet), nil
}

func (s *TweetService) DeleteTweet(viewer, tweetID string) error {
	return deleteWithLikes(s.ctx, s.deps, model.KindTweet, viewer, tweetID)
}

package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/utils"
)

type CommentService struct {
	ctx  context.Context
	deps *Deps
}

func NewCommentService(ctx context.Context, deps *Deps) *CommentService {
	return &CommentService{ctx: ctx, deps: deps}
}

func (s *CommentService) ListComments(viewer, videoID string, q pipeline.ListQuery) (*pipeline.Page[pipeline.CommentRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	if videoID, err = mustExist(s.ctx, s.deps.Store, model.KindVideo, videoID); err != nil {
		return nil, err
	}
	stages, err := pipeline.VideoComments(viewer, videoID, q)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.CommentRow](s.ctx, s.deps.Store, model.KindComment, stages)
}

func (s *CommentService) AddComment(viewer, videoID, content string) (*model.Comment, error) {
	comment := &model.Comment{Content: strings.TrimSpace(content)}
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindComment,
		Viewer: viewer,
		Action: ActionCreate,
		Validate: func() error {
			owner, err := viewerID(viewer)
			if err != nil {
				return err
			}
			comment.OwnerId = owner
			if comment.VideoId, err = utils.NormalizeID(videoID); err != nil {
				return err
			}
			return required("content", comment.Content)
		},
		Apply: func(ctx context.Context, _ model.Entity) error {
			if _, err := mustExist(ctx, s.deps.Store, model.KindVideo, comment.VideoId); err != nil {
				return err
			}
			return s.deps.Store.CreateOne(ctx, comment)
		},
		Cascade: func(model.Entity) []CascadeStep {
			return []CascadeStep{{Name: "comment event", Run: func(ctx context.Context) error {
				return s.deps.publish(ctx, mq.CommentAdded, comment.OwnerId, string(model.KindVideo), comment.VideoId, true)
			}}}
		},
	})
	if err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) UpdateComment(viewer, commentID, content string) (*model.Comment, error) {
	e, err := updateContent(s.ctx, s.deps, model.KindComment, viewer, commentID, content)
	if err != nil {
		return nil, err
	}
	return e.(*model.Comment), nil
}

// DeleteComment removes the comment and every like on it.
func (s *CommentService) DeleteComment(viewer, commentID string) error {
	return deleteWithLikes(s.ctx, s.deps, model.KindComment, viewer, commentID)
}

// mustExist normalizes id and fails with NotFound when no row has it.
func mustExist(ctx context.Context, store *db.Store, kind model.Kind, id string) (string, error) {
	id, err := utils.NormalizeID(id)
	if err != nil {
		return "", err
	}
	ok, err := store.Exists(ctx, kind, id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errno.NotFoundErr.WithMessage(string(kind) + " not found")
	}
	return id, nil
}

// updateContent rewrites the content of an owned comment or tweet.
func updateContent(ctx context.Context, deps *Deps, kind model.Kind, viewer, id, content string) (model.Entity, error) {
	content = strings.TrimSpace(content)
	var updated model.Entity
	_, err := deps.Execute(ctx, Mutation{
		Kind:   kind,
		ID:     id,
		Viewer: viewer,
		Action: ActionUpdate,
		Validate: func() error {
			return required("content", content)
		},
		Apply: func(ctx context.Context, target model.Entity) error {
			var err error
			updated, err = deps.Store.UpdateOwnedByID(ctx, kind, target.GetID(), target.OwnerID(), db.Cond{"content": content})
			return err
		},
	})
	return updated, err
}

// deleteWithLikes removes an owned comment or tweet and the likes on it.
func deleteWithLikes(ctx context.Context, deps *Deps, kind model.Kind, viewer, id string) error {
	_, err := deps.Execute(ctx, Mutation{
		Kind:   kind,
		ID:     id,
		Viewer: viewer,
		Action: ActionDelete,
		Apply: func(ctx context.Context, target model.Entity) error {
			_, err := deps.Store.DeleteByID(ctx, kind, target.GetID())
			return err
		},
		Cascade: func(target model.Entity) []CascadeStep {
			return []CascadeStep{likeCleanup(deps.Store, kind, target.GetID())}
		},
	})
	return err
}

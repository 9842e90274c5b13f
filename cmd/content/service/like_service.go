package service

import (
	"context"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
)

type LikeService struct {
	ctx  context.Context
	deps *Deps
}

func NewLikeService(ctx context.Context, deps *Deps) *LikeService {
	return &LikeService{ctx: ctx, deps: deps}
}

// ToggleLike likes target for viewer, or removes the like when one exists.
// It returns whether viewer likes target afterwards.
func (s *LikeService) ToggleLike(viewer string, kind model.Kind, targetID string) (bool, error) {
	if !kind.Likeable() {
		return false, errno.ParamErr.WithMessage(string(kind) + " cannot be liked")
	}
	viewer, err := viewerID(viewer)
	if err != nil {
		return false, err
	}
	if targetID, err = mustExist(s.ctx, s.deps.Store, kind, targetID); err != nil {
		return false, err
	}

	liked := true
	existing, err := s.deps.Store.FindOne(s.ctx, model.KindLike, db.Cond{
		"liked_by": viewer, "target_kind": kind, "target_id": targetID,
	})
	switch {
	case err == nil:
		liked = false
		_, err = s.deps.Execute(s.ctx, Mutation{
			Kind:   model.KindLike,
			ID:     existing.GetID(),
			Viewer: viewer,
			Action: ActionDelete,
			Apply: func(ctx context.Context, target model.Entity) error {
				_, err := s.deps.Store.DeleteByID(ctx, model.KindLike, target.GetID())
				return err
			},
		})
	case errno.Is(err, errno.NotFoundErr):
		err = s.deps.Store.CreateOne(s.ctx, &model.Like{LikedBy: viewer, TargetKind: kind, TargetId: targetID})
		if errno.Is(err, errno.ConflictErr) {
			// a concurrent request liked it first
			err = nil
		}
	}
	if err != nil {
		return false, err
	}
	if err = s.deps.publish(s.ctx, mq.LikeToggled, viewer, string(kind), targetID, liked); err != nil {
		return false, err
	}
	return liked, nil
}

// LikedVideos lists the published videos viewer likes, newest first.
func (s *LikeService) LikedVideos(viewer string, q pipeline.ListQuery) (*pipeline.Page[pipeline.VideoRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	stages, err := pipeline.LikedVideos(viewer, q)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.VideoRow](s.ctx, s.deps.Store, model.KindVideo, stages)
}

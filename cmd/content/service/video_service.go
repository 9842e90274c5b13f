package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/search"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// searchHitLimit caps how many index hits feed a text search.
const searchHitLimit = 1000

type PublishVideoRequest struct {
	Title         string
	Description   string
	VideoPath     string
	ThumbnailPath string
}

type UpdateVideoRequest struct {
	Title         string
	Description   string
	ThumbnailPath string // optional replacement
}

type ListVideosRequest struct {
	pipeline.ListQuery
	Query   string
	OwnerID string
}

type VideoService struct {
	ctx  context.Context
	deps *Deps
}

func NewVideoService(ctx context.Context, deps *Deps) *VideoService {
	return &VideoService{ctx: ctx, deps: deps}
}

// ListVideos is the public feed: published videos only, whatever the query.
func (s *VideoService) ListVideos(viewer string, req *ListVideosRequest) (*pipeline.Page[pipeline.VideoRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	owner := ""
	if req.OwnerID != "" {
		if owner, err = utils.NormalizeID(req.OwnerID); err != nil {
			return nil, err
		}
	}
	text := strings.TrimSpace(req.Query)
	match := pipeline.Search{Text: text}
	if text != "" && s.deps.Index != nil {
		hits, err := s.deps.Index.Search(s.ctx, text, searchHitLimit)
		if err != nil {
			hlog.CtxErrorf(s.ctx, "search videos %q failed: %v", text, err)
			return nil, errno.ServiceErr.WithMessage("video search failed")
		}
		match.Indexed, match.Hits = true, hits
	}

	stages, err := pipeline.VideoFeed(viewer, owner, match, req.ListQuery)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.VideoRow](s.ctx, s.deps.Store, model.KindVideo, stages)
}

// GetVideo returns a published video, or an unpublished one to its owner.
// Each read counts as a view and lands in the viewer's watch history.
func (s *VideoService) GetVideo(viewer, videoID string) (*pipeline.VideoDetailRow, error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	if videoID, err = utils.NormalizeID(videoID); err != nil {
		return nil, err
	}
	stages, err := pipeline.VideoDetail(viewer, videoID)
	if err != nil {
		return nil, err
	}
	var rows []pipeline.VideoDetailRow
	if _, err = s.deps.Store.RunPipeline(s.ctx, model.KindVideo, stages, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}

	if err = s.deps.Store.IncrementViews(s.ctx, videoID); err != nil {
		return nil, err
	}
	if s.deps.History != nil {
		if err = s.deps.History.Record(s.ctx, viewer, videoID); err != nil {
			hlog.CtxErrorf(s.ctx, "record watch history of %s failed: %v", viewer, err)
			return nil, errno.ServiceErr.WithMessage("record watch history failed")
		}
	}
	return &rows[0], nil
}

// PublishVideo uploads both media files and stores the video unpublished.
func (s *VideoService) PublishVideo(viewer string, req *PublishVideoRequest) (*model.Video, error) {
	video := &model.Video{}
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindVideo,
		Viewer: viewer,
		Action: ActionCreate,
		Validate: func() error {
			owner, err := viewerID(viewer)
			if err != nil {
				return err
			}
			video.OwnerId = owner
			return required("title", req.Title, "description", req.Description,
				"videoFile", req.VideoPath, "thumbnail", req.ThumbnailPath)
		},
		Apply: func(ctx context.Context, _ model.Entity) error {
			file, err := s.deps.Media.Upload(ctx, req.VideoPath, oss.KindVideo)
			if err != nil {
				return err
			}
			thumb, err := s.deps.Media.Upload(ctx, req.ThumbnailPath, oss.KindImage)
			if err != nil {
				s.deps.discardMedia(ctx, file.ID, oss.KindVideo)
				return err
			}
			video.Title = strings.TrimSpace(req.Title)
			video.Description = strings.TrimSpace(req.Description)
			video.Duration = file.Duration
			video.VideoFileId, video.VideoFileUrl = file.ID, file.URL
			video.ThumbnailId, video.ThumbnailUrl = thumb.ID, thumb.URL
			return s.deps.Store.CreateOne(ctx, video)
		},
		Cascade: func(model.Entity) []CascadeStep {
			return []CascadeStep{
				s.indexStep(video),
				{Name: "publish event", Run: func(ctx context.Context) error {
					return s.deps.publish(ctx, mq.VideoPublished, video.OwnerId, string(model.KindVideo), video.VideoId, video.IsPublished)
				}},
			}
		},
	})
	if err != nil {
		return nil, err
	}
	return video, nil
}

// UpdateVideo replaces title, description and optionally the thumbnail.
// The old thumbnail is removed only after the row points at the new one.
func (s *VideoService) UpdateVideo(viewer, videoID string, req *UpdateVideoRequest) (*model.Video, error) {
	var updated *model.Video
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindVideo,
		ID:     videoID,
		Viewer: viewer,
		Action: ActionUpdate,
		Validate: func() error {
			return required("title", req.Title, "description", req.Description)
		},
		Apply: func(ctx context.Context, target model.Entity) error {
			patch := db.Cond{
				"title":       strings.TrimSpace(req.Title),
				"description": strings.TrimSpace(req.Description),
			}
			var thumb *oss.Asset
			if req.ThumbnailPath != "" {
				var err error
				if thumb, err = s.deps.Media.Upload(ctx, req.ThumbnailPath, oss.KindImage); err != nil {
					return err
				}
				patch["thumbnail_id"], patch["thumbnail_url"] = thumb.ID, thumb.URL
			}
			e, err := s.deps.Store.UpdateOwnedByID(ctx, model.KindVideo, target.GetID(), target.OwnerID(), patch)
			if err != nil {
				if thumb != nil {
					s.deps.discardMedia(ctx, thumb.ID, oss.KindImage)
				}
				return err
			}
			updated = e.(*model.Video)
			return nil
		},
		Cascade: func(target model.Entity) []CascadeStep {
			steps := []CascadeStep{s.indexStep(updated)}
			old := target.(*model.Video)
			if old.ThumbnailId != updated.ThumbnailId {
				steps = append(steps, s.deps.deleteMedia("old thumbnail", old.ThumbnailId, oss.KindImage))
			}
			return steps
		},
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteVideo removes the video and everything hanging off it: likes on
// the video and on its comments, the comments, playlist memberships, the
// search entry and both media assets.
func (s *VideoService) DeleteVideo(viewer, videoID string) error {
	store := s.deps.Store
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindVideo,
		ID:     videoID,
		Viewer: viewer,
		Action: ActionDelete,
		Apply: func(ctx context.Context, target model.Entity) error {
			_, err := store.DeleteByID(ctx, model.KindVideo, target.GetID())
			return err
		},
		Cascade: func(target model.Entity) []CascadeStep {
			video := target.(*model.Video)
			id := video.VideoId
			return []CascadeStep{
				{Name: "comment likes", Run: func(ctx context.Context) error {
					commentIDs, err := store.PluckIDs(ctx, model.KindComment, db.Cond{"video_id": id})
					if err != nil || len(commentIDs) == 0 {
						return err
					}
					_, err = store.DeleteMany(ctx, model.KindLike, db.Cond{"target_kind": model.KindComment, "target_id": commentIDs})
					return err
				}},
				likeCleanup(store, model.KindVideo, id),
				{Name: "comments", Run: func(ctx context.Context) error {
					_, err := store.DeleteMany(ctx, model.KindComment, db.Cond{"video_id": id})
					return err
				}},
				{Name: "playlist entries", Run: func(ctx context.Context) error {
					_, err := store.DeletePlaylistEntries(ctx, db.Cond{"video_id": id})
					return err
				}},
				{Name: "search entry", Run: func(ctx context.Context) error {
					if s.deps.Index == nil {
						return nil
					}
					return s.deps.Index.Remove(ctx, id)
				}},
				s.deps.deleteMedia("thumbnail", video.ThumbnailId, oss.KindImage),
				s.deps.deleteMedia("video file", video.VideoFileId, oss.KindVideo),
				{Name: "delete event", Run: func(ctx context.Context) error {
					return s.deps.publish(ctx, mq.VideoDeleted, video.OwnerId, string(model.KindVideo), id, false)
				}},
			}
		},
	})
	return err
}

// TogglePublish flips the published flag in one owner-guarded statement.
func (s *VideoService) TogglePublish(viewer, videoID string) (*model.Video, error) {
	var toggled *model.Video
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindVideo,
		ID:     videoID,
		Viewer: viewer,
		Action: ActionPublish,
		Apply: func(ctx context.Context, target model.Entity) error {
			var err error
			toggled, err = s.deps.Store.TogglePublished(ctx, target.GetID(), target.OwnerID())
			return err
		},
		Cascade: func(model.Entity) []CascadeStep {
			if !toggled.IsPublished {
				return nil
			}
			return []CascadeStep{{Name: "publish event", Run: func(ctx context.Context) error {
				return s.deps.publish(ctx, mq.VideoPublished, toggled.OwnerId, string(model.KindVideo), toggled.VideoId, true)
			}}}
		},
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

func (s *VideoService) indexStep(video *model.Video) CascadeStep {
	return CascadeStep{Name: "search entry", Run: func(ctx context.Context) error {
		if s.deps.Index == nil {
			return nil
		}
		return s.deps.Index.Put(ctx, search.Document{
			ID:          video.VideoId,
			OwnerID:     video.OwnerId,
			Title:       video.Title,
			Description: video.Description,
		})
	}}
}

// likeCleanup deletes every like pointing at one target.
func likeCleanup(store *db.Store, kind model.Kind, id string) CascadeStep {
	return CascadeStep{Name: string(kind) + " likes", Run: func(ctx context.Context) error {
		_, err := store.DeleteMany(ctx, model.KindLike, db.Cond{"target_kind": kind, "target_id": id})
		return err
	}}
}

// runPage executes a windowed pipeline into a page of T.
func runPage[T any](ctx context.Context, store *db.Store, kind model.Kind, stages []pipeline.Stage) (*pipeline.Page[T], error) {
	var rows []T
	total, err := store.RunPipeline(ctx, kind, stages, &rows)
	if err != nil {
		return nil, err
	}
	w, _ := pipeline.WindowOf(stages)
	return pipeline.NewPage(rows, w, total), nil
}

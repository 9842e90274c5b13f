package service

import (
	"context"

	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type HistoryService struct {
	ctx  context.Context
	deps *Deps
}

func NewHistoryService(ctx context.Context, deps *Deps) *HistoryService {
	return &HistoryService{ctx: ctx, deps: deps}
}

// WatchHistory pages the viewer's watched videos, most recent first.
// Videos deleted or unpublished since are skipped.
func (s *HistoryService) WatchHistory(viewer string, q pipeline.ListQuery) (*pipeline.Page[pipeline.VideoRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	w, err := pipeline.NewWindow(q.Page, q.Limit)
	if err != nil {
		return nil, err
	}
	if s.deps.History == nil {
		return pipeline.SlicePage[pipeline.VideoRow](nil, w), nil
	}

	raw, err := s.deps.History.List(s.ctx, viewer)
	if err != nil {
		hlog.CtxErrorf(s.ctx, "load watch history of %s failed: %v", viewer, err)
		return nil, errno.ServiceErr.WithMessage("load watch history failed")
	}
	ids := make([]string, 0, len(raw))
	for _, r := range raw {
		// entries written by older builds may not parse
		if id, err := utils.NormalizeID(r); err == nil {
			ids = append(ids, id)
		}
	}

	stages, err := pipeline.HistoryVideos(viewer, ids)
	if err != nil {
		return nil, err
	}
	var rows []pipeline.VideoRow
	if _, err = s.deps.Store.RunPipeline(s.ctx, model.KindVideo, stages, &rows); err != nil {
		return nil, err
	}
	byID := make(map[string]pipeline.VideoRow, len(rows))
	for _, r := range rows {
		byID[r.VideoId] = r
	}
	ordered := make([]pipeline.VideoRow, 0, len(rows))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		}
	}
	return pipeline.SlicePage(ordered, w), nil
}

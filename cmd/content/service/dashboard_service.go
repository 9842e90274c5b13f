package service

import (
	"context"

	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
)

type DashboardService struct {
	ctx  context.Context
	deps *Deps
}

func NewDashboardService(ctx context.Context, deps *Deps) *DashboardService {
	return &DashboardService{ctx: ctx, deps: deps}
}

// ChannelStats totals subscribers, videos, views and likes of a channel.
func (s *DashboardService) ChannelStats(channelID string) (*pipeline.ChannelStatsRow, error) {
	channelID, err := utils.NormalizeID(channelID)
	if err != nil {
		return nil, err
	}
	stages, err := pipeline.ChannelStats(channelID)
	if err != nil {
		return nil, err
	}
	var rows []pipeline.ChannelStatsRow
	if _, err = s.deps.Store.RunPipeline(s.ctx, model.KindUser, stages, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errno.NotFoundErr.WithMessage("channel not found")
	}
	return &rows[0], nil
}

// ChannelVideos lists every video of the viewer, published or not.
func (s *DashboardService) ChannelVideos(viewer string, q pipeline.ListQuery) (*pipeline.Page[pipeline.DashboardVideoRow], error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	stages, err := pipeline.ChannelVideos(viewer, q)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.DashboardVideoRow](s.ctx, s.deps.Store, model.KindVideo, stages)
}

package handlers

import (
	"context"

	"VidTube.com/cmd/content/service"
	"github.com/cloudwego/hertz/pkg/app"
)

func ChannelStats(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	stats, err := service.NewDashboardService(ctx, deps).ChannelStats(viewerID)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Channel stats fetched successfully"), stats)
}

func ChannelVideos(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewDashboardService(ctx, deps).ChannelVideos(viewerID, param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Channel videos fetched successfully"), page)
}

func WatchHistory(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewHistoryService(ctx, deps).WatchHistory(viewerID, param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Watch history fetched successfully"), page)
}

func HealthCheck(ctx context.Context, c *app.RequestContext) {
	SendResponse(c, ok200("OK"), struct{}{})
}

package handlers

import (
	"context"

	"VidTube.com/cmd/content/service"
	"VidTube.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

// ToggleLike serves /likes/toggle/:kind/:targetId for video, comment and tweet.
func ToggleLike(kind model.Kind) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		viewerID, ok := viewer(ctx, c)
		if !ok {
			return
		}
		liked, err := service.NewLikeService(ctx, deps).ToggleLike(viewerID, kind, c.Param("targetId"))
		if err != nil {
			SendResponse(c, err, nil)
			return
		}
		SendResponse(c, ok200("Like toggled successfully"), utils.H{"isLiked": liked})
	}
}

func LikedVideos(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewLikeService(ctx, deps).LikedVideos(viewerID, param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Liked videos fetched successfully"), page)
}

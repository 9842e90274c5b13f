package handlers

import (
	"context"

	"VidTube.com/cmd/content/service"
	"github.com/cloudwego/hertz/pkg/app"
)

type PublishVideoParam struct {
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
}

func ListVideos(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewVideoService(ctx, deps).ListVideos(viewerID, &service.ListVideosRequest{
		ListQuery: param.listQuery(),
		Query:     param.Query,
		OwnerID:   param.UserId,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Videos fetched successfully"), page)
}

func PublishVideo(ctx context.Context, c *app.RequestContext) {
	var param PublishVideoParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	videoPath, err := stageUpload(c, "videoFile", false)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	thumbPath, err := stageUpload(c, "thumbnail", false)
	defer discardStaged(videoPath, thumbPath)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	video, err := service.NewVideoService(ctx, deps).PublishVideo(viewerID, &service.PublishVideoRequest{
		Title:         param.Title,
		Description:   param.Description,
		VideoPath:     videoPath,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Video uploaded successfully"), video)
}

func GetVideo(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	video, err := service.NewVideoService(ctx, deps).GetVideo(viewerID, c.Param("videoId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Video details fetched successfully"), video)
}

func UpdateVideo(ctx context.Context, c *app.RequestContext) {
	var param PublishVideoParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	thumbPath, err := stageUpload(c, "thumbnail", true)
	defer discardStaged(thumbPath)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	video, err := service.NewVideoService(ctx, deps).UpdateVideo(viewerID, c.Param("videoId"), &service.UpdateVideoRequest{
		Title:         param.Title,
		Description:   param.Description,
		ThumbnailPath: thumbPath,
	})
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Video updated successfully"), video)
}

func DeleteVideo(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	if err := service.NewVideoService(ctx, deps).DeleteVideo(viewerID, c.Param("videoId")); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Video deleted successfully"), struct{}{})
}

func TogglePublish(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	video, err := service.NewVideoService(ctx, deps).TogglePublish(viewerID, c.Param("videoId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Publish status toggled successfully"), video)
}

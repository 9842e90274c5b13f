package handlers

import (
	"context"

	"VidTube.com/cmd/content/service"
	"github.com/cloudwego/hertz/pkg/app"
)

func ListComments(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewCommentService(ctx, deps).ListComments(viewerID, c.Param("videoId"), param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Comments fetched successfully"), page)
}

func AddComment(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	comment, err := service.NewCommentService(ctx, deps).AddComment(viewerID, c.Param("videoId"), param.Content)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Comment added successfully"), comment)
}

func UpdateComment(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	comment, err := service.NewCommentService(ctx, deps).UpdateComment(viewerID, c.Param("commentId"), param.Content)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Comment updated successfully"), comment)
}

func DeleteComment(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	if err := service.NewCommentService(ctx, deps).DeleteComment(viewerID, c.Param("commentId")); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Comment deleted successfully"), struct{}{})
}

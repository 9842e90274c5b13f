package handlers

import (
	"context"

	"VidTube.com/cmd/content/service"
	"github.com/cloudwego/hertz/pkg/app"
)

func CreateTweet(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	tweet, err := service.NewTweetService(ctx, deps).CreateTweet(viewerID, param.Content)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Tweet created successfully"), tweet)
}

func ListUserTweets(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewTweetService(ctx, deps).ListUserTweets(viewerID, c.Param("userId"), param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Tweets fetched successfully"), page)
}

func UpdateTweet(ctx context.Context, c *app.RequestContext) {
	var param ContentParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	tweet, err := service.NewTweetService(ctx, deps).UpdateTweet(viewerID, c.Param("tweetId"), param.Content)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Tweet updated successfully"), tweet)
}

func DeleteTweet(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	if err := service.NewTweetService(ctx, deps).DeleteTweet(viewerID, c.Param("tweetId")); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Tweet deleted successfully"), struct{}{})
}

package handlers

import (
	"context"

	"VidTube.com/cmd/content/service"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"
)

func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	subscribed, err := service.NewSubscriptionService(ctx, deps).ToggleSubscription(viewerID, c.Param("channelId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Subscription toggled successfully"), utils.H{"isSubscribed": subscribed})
}

func ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewSubscriptionService(ctx, deps).ChannelSubscribers(viewerID, c.Param("channelId"), param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Subscribers fetched successfully"), page)
}

func SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	page, err := service.NewSubscriptionService(ctx, deps).SubscribedChannels(viewerID, c.Param("subscriberId"), param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Subscribed channels fetched successfully"), page)
}

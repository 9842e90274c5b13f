package handlers

import (
	"context"

	"VidTube.com/cmd/content/service"
	"github.com/cloudwego/hertz/pkg/app"
)

func CreatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	playlist, err := service.NewPlaylistService(ctx, deps).CreatePlaylist(viewerID, param.Name, param.Description)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Playlist created successfully"), playlist)
}

func UserPlaylists(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	if _, ok := viewer(ctx, c); !ok {
		return
	}
	page, err := service.NewPlaylistService(ctx, deps).UserPlaylists(c.Param("userId"), param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Playlists fetched successfully"), page)
}

func GetPlaylist(ctx context.Context, c *app.RequestContext) {
	var param ListParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	playlist, err := service.NewPlaylistService(ctx, deps).GetPlaylist(viewerID, c.Param("playlistId"), param.listQuery())
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Playlist fetched successfully"), playlist)
}

func UpdatePlaylist(ctx context.Context, c *app.RequestContext) {
	var param PlaylistParam
	if !bind(c, &param) {
		return
	}
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	playlist, err := service.NewPlaylistService(ctx, deps).UpdatePlaylist(viewerID, c.Param("playlistId"), param.Name, param.Description)
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Playlist updated successfully"), playlist)
}

func DeletePlaylist(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	if err := service.NewPlaylistService(ctx, deps).DeletePlaylist(viewerID, c.Param("playlistId")); err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Playlist deleted successfully"), struct{}{})
}

func AddPlaylistVideo(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	playlist, err := service.NewPlaylistService(ctx, deps).AddVideo(viewerID, c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Video added to playlist successfully"), playlist)
}

func RemovePlaylistVideo(ctx context.Context, c *app.RequestContext) {
	viewerID, ok := viewer(ctx, c)
	if !ok {
		return
	}
	playlist, err := service.NewPlaylistService(ctx, deps).RemoveVideo(viewerID, c.Param("playlistId"), c.Param("videoId"))
	if err != nil {
		SendResponse(c, err, nil)
		return
	}
	SendResponse(c, ok200("Video removed from playlist successfully"), playlist)
}

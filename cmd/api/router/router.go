package router

import (
	"VidTube.com/cmd/api/handlers"
	"VidTube.com/cmd/api/router/authfunc"
	"VidTube.com/cmd/model"
	"github.com/cloudwego/hertz/pkg/app/server"
)

// Register mounts every content route under /api/v1. Everything except the
// health check requires a bearer token.
func Register(r *server.Hertz) {
	v1 := r.Group("/api/v1")
	v1.GET("/healthcheck", handlers.HealthCheck)

	api := v1.Group("", authfunc.Auth()...)

	videos := api.Group("/videos")
	videos.GET("", handlers.ListVideos)
	videos.POST("", handlers.PublishVideo)
	videos.GET("/:videoId", handlers.GetVideo)
	videos.PATCH("/:videoId", handlers.UpdateVideo)
	videos.DELETE("/:videoId", handlers.DeleteVideo)
	videos.PATCH("/toggle/publish/:videoId", handlers.TogglePublish)

	comments := api.Group("/comments")
	comments.GET("/:videoId", handlers.ListComments)
	comments.POST("/:videoId", handlers.AddComment)
	comments.PATCH("/c/:commentId", handlers.UpdateComment)
	comments.DELETE("/c/:commentId", handlers.DeleteComment)

	tweets := api.Group("/tweets")
	tweets.POST("", handlers.CreateTweet)
	tweets.GET("/user/:userId", handlers.ListUserTweets)
	tweets.PATCH("/:tweetId", handlers.UpdateTweet)
	tweets.DELETE("/:tweetId", handlers.DeleteTweet)

	playlists := api.Group("/playlist")
	playlists.POST("", handlers.CreatePlaylist)
	playlists.GET("/user/:userId", handlers.UserPlaylists)
	playlists.GET("/:playlistId", handlers.GetPlaylist)
	playlists.PATCH("/:playlistId", handlers.UpdatePlaylist)
	playlists.DELETE("/:playlistId", handlers.DeletePlaylist)
	playlists.PATCH("/add/:videoId/:playlistId", handlers.AddPlaylistVideo)
	playlists.PATCH("/remove/:videoId/:playlistId", handlers.RemovePlaylistVideo)

	likes := api.Group("/likes")
	likes.POST("/toggle/v/:targetId", handlers.ToggleLike(model.KindVideo))
	likes.POST("/toggle/c/:targetId", handlers.ToggleLike(model.KindComment))
	likes.POST("/toggle/t/:targetId", handlers.ToggleLike(model.KindTweet))
	likes.GET("/videos", handlers.LikedVideos)

	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("/c/:channelId", handlers.ToggleSubscription)
	subscriptions.GET("/c/:channelId", handlers.ChannelSubscribers)
	subscriptions.GET("/u/:subscriberId", handlers.SubscribedChannels)

	dashboard := api.Group("/dashboard")
	dashboard.GET("/stats", handlers.ChannelStats)
	dashboard.GET("/videos", handlers.ChannelVideos)

	api.GET("/users/history", handlers.WatchHistory)
}

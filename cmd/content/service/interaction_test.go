package service

import (
	"testing"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commentOf(t *testing.T, page *pipeline.Page[pipeline.CommentRow], id string) pipeline.CommentRow {
	t.Helper()
	for _, r := range page.Results {
		if r.CommentId == id {
			return r
		}
	}
	t.Fatalf("comment %s not listed", id)
	return pipeline.CommentRow{}
}

func TestCommentLikeScenario(t *testing.T) {
	f := newFixture(t)
	u1, u2, u3 := f.user(t, "u1"), f.user(t, "u2"), f.user(t, "u3")
	comments := NewCommentService(f.ctx, f.deps)
	likes := NewLikeService(f.ctx, f.deps)
	a := f.video(t, u1, "a", true)

	c, err := comments.AddComment(u1, a.VideoId, "first!")
	require.NoError(t, err)

	page, err := comments.ListComments(u2, a.VideoId, pipeline.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, commentOf(t, page, c.CommentId).LikesCount)

	liked, err := likes.ToggleLike(u2, model.KindComment, c.CommentId)
	require.NoError(t, err)
	assert.True(t, liked)

	page, err = comments.ListComments(u2, a.VideoId, pipeline.ListQuery{})
	require.NoError(t, err)
	row := commentOf(t, page, c.CommentId)
	assert.EqualValues(t, 1, row.LikesCount)
	assert.True(t, row.IsLiked)
	assert.Equal(t, "u1", row.Owner.UserName)

	page, err = comments.ListComments(u3, a.VideoId, pipeline.ListQuery{})
	require.NoError(t, err)
	assert.False(t, commentOf(t, page, c.CommentId).IsLiked)

	t.Run("toggling twice restores the like state", func(t *testing.T) {
		liked, err := likes.ToggleLike(u2, model.KindComment, c.CommentId)
		require.NoError(t, err)
		assert.False(t, liked)
		page, err := comments.ListComments(u2, a.VideoId, pipeline.ListQuery{})
		require.NoError(t, err)
		row := commentOf(t, page, c.CommentId)
		assert.False(t, row.IsLiked)
		assert.EqualValues(t, 0, row.LikesCount)
	})
}

func TestCommentValidation(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	comments := NewCommentService(f.ctx, f.deps)
	a := f.video(t, u1, "a", true)

	_, err := comments.AddComment(u1, a.VideoId, "   ")
	assertCode(t, err, errno.ParamErr)
	_, err = comments.AddComment(u1, "bad-id", "hi")
	assertCode(t, err, errno.InvalidIdentifierErr)
	_, err = comments.AddComment(u1, utils.NewID(), "hi")
	assertCode(t, err, errno.NotFoundErr)
	_, err = comments.ListComments(u1, utils.NewID(), pipeline.ListQuery{})
	assertCode(t, err, errno.NotFoundErr)

	c, err := comments.AddComment(u1, a.VideoId, "mine")
	require.NoError(t, err)
	_, err = comments.UpdateComment(u2, c.CommentId, "hijacked")
	assertCode(t, err, errno.ForbiddenErr)
	assertCode(t, comments.DeleteComment(u2, c.CommentId), errno.ForbiddenErr)

	e, err := f.deps.Store.FindByID(f.ctx, model.KindComment, c.CommentId)
	require.NoError(t, err)
	assert.Equal(t, "mine", e.(*model.Comment).Content)

	updated, err := comments.UpdateComment(u1, c.CommentId, " edited ")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestDeleteCommentRemovesLikes(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	comments := NewCommentService(f.ctx, f.deps)
	a := f.video(t, u1, "a", true)
	c, err := comments.AddComment(u2, a.VideoId, "hello")
	require.NoError(t, err)
	_, err = NewLikeService(f.ctx, f.deps).ToggleLike(u1, model.KindComment, c.CommentId)
	require.NoError(t, err)

	require.NoError(t, comments.DeleteComment(u2, c.CommentId))
	ids, err := f.deps.Store.PluckIDs(f.ctx, model.KindLike, db.Cond{"target_id": c.CommentId})
	require.NoError(t, err)
	assert.Empty(t, ids)
	_, err = f.deps.Store.FindByID(f.ctx, model.KindVideo, a.VideoId)
	assert.NoError(t, err)
}

func TestTweets(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	tweets := NewTweetService(f.ctx, f.deps)

	tw, err := tweets.CreateTweet(u1, "hello world")
	require.NoError(t, err)
	_, err = tweets.CreateTweet(u1, "")
	assertCode(t, err, errno.ParamErr)

	_, err = tweets.UpdateTweet(u2, tw.TweetId, "nope")
	assertCode(t, err, errno.ForbiddenErr)
	assertCode(t, tweets.DeleteTweet(u2, tw.TweetId), errno.ForbiddenErr)

	_, err = NewLikeService(f.ctx, f.deps).ToggleLike(u2, model.KindTweet, tw.TweetId)
	require.NoError(t, err)
	page, err := tweets.ListUserTweets(u2, u1, pipeline.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "hello world", page.Results[0].Content)
	assert.True(t, page.Results[0].IsLiked)

	_, err = tweets.ListUserTweets(u2, utils.NewID(), pipeline.ListQuery{})
	assertCode(t, err, errno.NotFoundErr)

	require.NoError(t, tweets.DeleteTweet(u1, tw.TweetId))
	ids, err := f.deps.Store.PluckIDs(f.ctx, model.KindLike, db.Cond{"target_id": tw.TweetId})
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestToggleLikeTargets(t *testing.T) {
	f := newFixture(t)
	u1 := f.user(t, "u1")
	likes := NewLikeService(f.ctx, f.deps)
	a := f.video(t, u1, "a", true)
	f.video(t, u1, "b", true)

	_, err := likes.ToggleLike(u1, model.KindPlaylist, utils.NewID())
	assertCode(t, err, errno.ParamErr)
	_, err = likes.ToggleLike(u1, model.KindVideo, utils.NewID())
	assertCode(t, err, errno.NotFoundErr)

	liked, err := likes.ToggleLike(u1, model.KindVideo, a.VideoId)
	require.NoError(t, err)
	assert.True(t, liked)
	last := f.events.events[len(f.events.events)-1]
	assert.True(t, last.Active)
	assert.Equal(t, a.VideoId, last.TargetID)

	page, err := likes.LikedVideos(u1, pipeline.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, a.VideoId, page.Results[0].VideoId)
	assert.True(t, page.Results[0].IsLiked)
}

func TestSubscriptions(t *testing.T) {
	f := newFixture(t)
	u1, u2, u3 := f.user(t, "u1"), f.user(t, "u2"), f.user(t, "u3")
	subs := NewSubscriptionService(f.ctx, f.deps)

	_, err := subs.ToggleSubscription(u1, u1)
	assertCode(t, err, errno.ParamErr)
	_, err = subs.ToggleSubscription(u1, utils.NewID())
	assertCode(t, err, errno.NotFoundErr)

	on, err := subs.ToggleSubscription(u2, u1)
	require.NoError(t, err)
	assert.True(t, on)
	_, err = subs.ToggleSubscription(u3, u2)
	require.NoError(t, err)

	page, err := subs.ChannelSubscribers(u3, u1, pipeline.ListQuery{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	row := page.Results[0]
	assert.Equal(t, u2, row.SubscriberId)
	assert.Equal(t, "u2", row.Subscriber.UserName)
	assert.EqualValues(t, 1, row.Subscriber.SubscriberCount)
	assert.True(t, row.Subscriber.IsSubscribed)

	channels, err := subs.SubscribedChannels(u1, u2, pipeline.ListQuery{})
	require.NoError(t, err)
	require.Len(t, channels.Results, 1)
	assert.Equal(t, u1, channels.Results[0].ChannelId)
	assert.False(t, channels.Results[0].Channel.IsSubscribed)

	off, err := subs.ToggleSubscription(u2, u1)
	require.NoError(t, err)
	assert.False(t, off)
	page, err = subs.ChannelSubscribers(u3, u1, pipeline.ListQuery{})
	require.NoError(t, err)
	assert.Empty(t, page.Results)
}

func TestPlaylists(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	playlists := NewPlaylistService(f.ctx, f.deps)
	pub := f.video(t, u2, "pub", true)
	draft := f.video(t, u2, "draft", false)

	_, err := playlists.CreatePlaylist(u1, "mix", "")
	assertCode(t, err, errno.ParamErr)
	pl, err := playlists.CreatePlaylist(u1, "mix", "favourites")
	require.NoError(t, err)

	_, err = playlists.AddVideo(u2, pl.PlaylistId, pub.VideoId)
	assertCode(t, err, errno.ForbiddenErr)
	_, err = playlists.AddVideo(u1, pl.PlaylistId, utils.NewID())
	assertCode(t, err, errno.NotFoundErr)

	for i := 0; i < 2; i++ {
		_, err = playlists.AddVideo(u1, pl.PlaylistId, pub.VideoId)
		require.NoError(t, err)
	}
	_, err = playlists.AddVideo(u1, pl.PlaylistId, draft.VideoId)
	require.NoError(t, err)

	detail, err := playlists.GetPlaylist(u2, pl.PlaylistId, pipeline.ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, "u1", detail.Owner.UserName)
	assert.EqualValues(t, 1, detail.TotalVideos)
	require.Len(t, detail.Videos.Results, 1)
	assert.Equal(t, pub.VideoId, detail.Videos.Results[0].VideoId)

	list, err := playlists.UserPlaylists(u1, pipeline.ListQuery{})
	require.NoError(t, err)
	require.Len(t, list.Results, 1)
	assert.EqualValues(t, 2, list.Results[0].TotalVideos)

	updated, err := playlists.UpdatePlaylist(u1, pl.PlaylistId, "renamed", "still favourites")
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)
	_, err = playlists.UpdatePlaylist(u2, pl.PlaylistId, "x", "y")
	assertCode(t, err, errno.ForbiddenErr)

	_, err = playlists.RemoveVideo(u1, pl.PlaylistId, pub.VideoId)
	require.NoError(t, err)
	_, err = playlists.RemoveVideo(u1, pl.PlaylistId, pub.VideoId)
	assertCode(t, err, errno.NotFoundErr)

	require.NoError(t, playlists.DeletePlaylist(u1, pl.PlaylistId))
	_, err = playlists.GetPlaylist(u1, pl.PlaylistId, pipeline.ListQuery{})
	assertCode(t, err, errno.NotFoundErr)
	_, err = f.deps.Store.FindByID(f.ctx, model.KindVideo, draft.VideoId)
	assert.NoError(t, err)
}

func TestWatchHistory(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	videos := NewVideoService(f.ctx, f.deps)
	history := NewHistoryService(f.ctx, f.deps)
	a := f.video(t, u1, "a", true)
	b := f.video(t, u1, "b", true)
	c := f.video(t, u1, "c", true)

	for _, id := range []string{a.VideoId, b.VideoId, c.VideoId, a.VideoId} {
		_, err := videos.GetVideo(u2, id)
		require.NoError(t, err)
	}
	page, err := history.WatchHistory(u2, pipeline.ListQuery{Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalItems)
	assert.EqualValues(t, 2, page.TotalPages)
	require.Len(t, page.Results, 2)
	assert.Equal(t, a.VideoId, page.Results[0].VideoId)
	assert.Equal(t, c.VideoId, page.Results[1].VideoId)

	_, err = videos.TogglePublish(u1, b.VideoId)
	require.NoError(t, err)
	page, err = history.WatchHistory(u2, pipeline.ListQuery{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalItems)
	assert.Empty(t, page.Results)

	deps := *f.deps
	deps.History = nil
	page, err = NewHistoryService(f.ctx, &deps).WatchHistory(u2, pipeline.ListQuery{})
	require.NoError(t, err)
	assert.NotNil(t, page.Results)
	assert.EqualValues(t, 0, page.TotalItems)
}

func TestDashboard(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	dash := NewDashboardService(f.ctx, f.deps)
	a := f.video(t, u1, "a", true)
	f.video(t, u1, "b", false)
	_, err := NewLikeService(f.ctx, f.deps).ToggleLike(u2, model.KindVideo, a.VideoId)
	require.NoError(t, err)
	_, err = NewSubscriptionService(f.ctx, f.deps).ToggleSubscription(u2, u1)
	require.NoError(t, err)
	_, err = NewVideoService(f.ctx, f.deps).GetVideo(u2, a.VideoId)
	require.NoError(t, err)

	stats, err := dash.ChannelStats(u1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.SubscriberCount)
	assert.EqualValues(t, 2, stats.TotalVideos)
	assert.EqualValues(t, 1, stats.TotalViews)
	assert.EqualValues(t, 1, stats.TotalLikes)

	_, err = dash.ChannelStats(utils.NewID())
	assertCode(t, err, errno.NotFoundErr)

	page, err := dash.ChannelVideos(u1, pipeline.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalItems)
}

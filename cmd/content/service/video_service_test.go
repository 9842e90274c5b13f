package service

import (
	"testing"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishVideo(t *testing.T) {
	f := newFixture(t)
	u1 := f.user(t, "u1")
	svc := NewVideoService(f.ctx, f.deps)

	v := f.video(t, u1, "clip", false)
	assert.False(t, v.IsPublished)
	assert.Equal(t, u1, v.OwnerId)
	assert.Equal(t, 42.5, v.Duration)
	assert.NotEmpty(t, v.VideoFileId)
	assert.NotEmpty(t, v.ThumbnailUrl)
	assert.Contains(t, f.index.docs, v.VideoId)
	require.Len(t, f.events.events, 1)
	assert.Equal(t, mq.VideoPublished, f.events.events[0].Type)
	assert.False(t, f.events.events[0].Active)

	t.Run("missing fields fail before upload", func(t *testing.T) {
		before := len(f.media.uploads)
		_, err := svc.PublishVideo(u1, &PublishVideoRequest{Title: "  ", Description: "d", VideoPath: "a.mp4", ThumbnailPath: "a.png"})
		assertCode(t, err, errno.ParamErr)
		_, err = svc.PublishVideo(u1, &PublishVideoRequest{Title: "t", Description: "d", VideoPath: "a.mp4"})
		assertCode(t, err, errno.ParamErr)
		assert.Len(t, f.media.uploads, before)
	})

	t.Run("thumbnail upload failure fails and discards the video file", func(t *testing.T) {
		f.media.failUpload[oss.KindImage] = true
		defer delete(f.media.failUpload, oss.KindImage)
		deleted := len(f.media.deleted)
		_, err := svc.PublishVideo(u1, &PublishVideoRequest{Title: "t", Description: "d", VideoPath: "a.mp4", ThumbnailPath: "a.png"})
		require.Error(t, err)
		assert.Len(t, f.media.deleted, deleted+1)

		page, err := NewDashboardService(f.ctx, f.deps).ChannelVideos(u1, pipeline.ListQuery{})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.TotalItems)
	})

	t.Run("event failure surfaces after the write", func(t *testing.T) {
		f.events.err = errno.ServiceErr
		defer func() { f.events.err = nil }()
		_, err := svc.PublishVideo(u1, &PublishVideoRequest{Title: "t", Description: "d", VideoPath: "a.mp4", ThumbnailPath: "a.png"})
		assertCode(t, err, errno.ServiceErr)
	})
}

func TestTogglePublishScenario(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	svc := NewVideoService(f.ctx, f.deps)
	a := f.video(t, u1, "a", false)

	v, err := svc.TogglePublish(u1, a.VideoId)
	require.NoError(t, err)
	assert.True(t, v.IsPublished)

	_, err = svc.TogglePublish(u2, a.VideoId)
	assertCode(t, err, errno.ForbiddenErr)

	got, err := loadVideo(f, a.VideoId)
	require.NoError(t, err)
	assert.True(t, got.IsPublished)

	_, err = svc.TogglePublish(u1, utils.NewID())
	assertCode(t, err, errno.NotFoundErr)
}

func TestGetVideo(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	svc := NewVideoService(f.ctx, f.deps)
	hidden := f.video(t, u1, "hidden", false)
	public := f.video(t, u1, "public", true)

	_, err := svc.GetVideo(u2, hidden.VideoId)
	assertCode(t, err, errno.NotFoundErr)

	row, err := svc.GetVideo(u1, hidden.VideoId)
	require.NoError(t, err)
	assert.Equal(t, "hidden", row.Title)

	_, err = NewSubscriptionService(f.ctx, f.deps).ToggleSubscription(u2, u1)
	require.NoError(t, err)
	row, err = svc.GetVideo(u2, public.VideoId)
	require.NoError(t, err)
	assert.Equal(t, "u1", row.Owner.UserName)
	assert.EqualValues(t, 1, row.Owner.SubscriberCount)
	assert.True(t, row.Owner.IsSubscribed)
	assert.EqualValues(t, 0, row.Views)

	got, err := loadVideo(f, public.VideoId)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Views)
	assert.Equal(t, []string{public.VideoId}, f.history.entries[u2])

	_, err = svc.GetVideo(u2, "nope")
	assertCode(t, err, errno.InvalidIdentifierErr)
}

func TestListVideos(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	svc := NewVideoService(f.ctx, f.deps)
	f.video(t, u1, "cats one", true)
	f.video(t, u1, "dogs", true)
	f.video(t, u2, "cats two", true)
	f.video(t, u1, "cats draft", false)

	page, err := svc.ListVideos(u2, &ListVideosRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalItems)
	for _, r := range page.Results {
		assert.True(t, r.IsPublished)
	}
	assert.Equal(t, "cats two", page.Results[0].Title)

	page, err = svc.ListVideos(u2, &ListVideosRequest{Query: "cats"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.TotalItems)

	page, err = svc.ListVideos(u2, &ListVideosRequest{Query: "cats", OwnerID: u1})
	require.NoError(t, err)
	require.EqualValues(t, 1, page.TotalItems)
	assert.Equal(t, "cats one", page.Results[0].Title)

	t.Run("without an index text match runs in sql", func(t *testing.T) {
		deps := *f.deps
		deps.Index = nil
		page, err := NewVideoService(f.ctx, &deps).ListVideos(u2, &ListVideosRequest{Query: "cats"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.TotalItems)

		for _, q := range []string{"%", "_"} {
			page, err = NewVideoService(f.ctx, &deps).ListVideos(u2, &ListVideosRequest{Query: q})
			require.NoError(t, err)
			assert.Zero(t, page.TotalItems, "query %q", q)
		}
	})

	_, err = svc.ListVideos(u2, &ListVideosRequest{ListQuery: pipeline.ListQuery{SortBy: "owner"}})
	assertCode(t, err, errno.ParamErr)
}

func TestUpdateVideo(t *testing.T) {
	f := newFixture(t)
	u1, u2 := f.user(t, "u1"), f.user(t, "u2")
	svc := NewVideoService(f.ctx, f.deps)
	v := f.video(t, u1, "clip", true)

	_, err := svc.UpdateVideo(u2, v.VideoId, &UpdateVideoRequest{Title: "stolen", Description: "x"})
	assertCode(t, err, errno.ForbiddenErr)
	got, err := loadVideo(f, v.VideoId)
	require.NoError(t, err)
	assert.Equal(t, "clip", got.Title)

	updated, err := svc.UpdateVideo(u1, v.VideoId, &UpdateVideoRequest{Title: "renamed", Description: "new", ThumbnailPath: "b.png"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.NotEqual(t, v.ThumbnailId, updated.ThumbnailId)
	assert.Contains(t, f.media.deleted, v.ThumbnailId)
	assert.Equal(t, "renamed", f.index.docs[v.VideoId].Title)

	t.Run("old thumbnail delete failure is not fatal", func(t *testing.T) {
		f.media.failDelete = true
		defer func() { f.media.failDelete = false }()
		_, err := svc.UpdateVideo(u1, v.VideoId, &UpdateVideoRequest{Title: "again", Description: "new", ThumbnailPath: "c.png"})
		assert.NoError(t, err)
	})

	_, err = svc.UpdateVideo(u1, v.VideoId, &UpdateVideoRequest{Title: "", Description: "new"})
	assertCode(t, err, errno.ParamErr)
}

func TestDeleteVideoCascade(t *testing.T) {
	f := newFixture(t)
	u1, u2, u3 := f.user(t, "u1"), f.user(t, "u2"), f.user(t, "u3")
	videos := NewVideoService(f.ctx, f.deps)
	comments := NewCommentService(f.ctx, f.deps)
	likes := NewLikeService(f.ctx, f.deps)
	playlists := NewPlaylistService(f.ctx, f.deps)

	x := f.video(t, u1, "x", true)
	keep := f.video(t, u1, "keep", true)
	c, err := comments.AddComment(u2, x.VideoId, "nice")
	require.NoError(t, err)
	other, err := comments.AddComment(u2, keep.VideoId, "also nice")
	require.NoError(t, err)
	_, err = likes.ToggleLike(u2, model.KindVideo, x.VideoId)
	require.NoError(t, err)
	_, err = likes.ToggleLike(u3, model.KindComment, c.CommentId)
	require.NoError(t, err)
	_, err = likes.ToggleLike(u3, model.KindComment, other.CommentId)
	require.NoError(t, err)
	pl, err := playlists.CreatePlaylist(u3, "mix", "stuff")
	require.NoError(t, err)
	_, err = playlists.AddVideo(u3, pl.PlaylistId, x.VideoId)
	require.NoError(t, err)

	assertCode(t, videos.DeleteVideo(u2, x.VideoId), errno.ForbiddenErr)
	_, err = loadVideo(f, x.VideoId)
	require.NoError(t, err)

	f.media.failDelete = true
	require.NoError(t, videos.DeleteVideo(u1, x.VideoId))
	f.media.failDelete = false

	_, err = loadVideo(f, x.VideoId)
	assertCode(t, err, errno.NotFoundErr)
	_, err = f.deps.Store.FindByID(f.ctx, model.KindComment, c.CommentId)
	assertCode(t, err, errno.NotFoundErr)

	likeIDs, err := f.deps.Store.PluckIDs(f.ctx, model.KindLike, db.Cond{"target_id": []string{x.VideoId, c.CommentId}})
	require.NoError(t, err)
	assert.Empty(t, likeIDs)
	likeIDs, err = f.deps.Store.PluckIDs(f.ctx, model.KindLike, db.Cond{"target_id": other.CommentId})
	require.NoError(t, err)
	assert.Len(t, likeIDs, 1)

	assert.NotContains(t, f.index.docs, x.VideoId)
	detail, err := playlists.GetPlaylist(u3, pl.PlaylistId, pipeline.ListQuery{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, detail.Videos.TotalItems)

	assertCode(t, videos.DeleteVideo(u1, x.VideoId), errno.NotFoundErr)
}

func loadVideo(f *fixture, id string) (*model.Video, error) {
	e, err := f.deps.Store.FindByID(f.ctx, model.KindVideo, id)
	if err != nil {
		return nil, err
	}
	return e.(*model.Video), nil
}

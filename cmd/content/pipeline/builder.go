package pipeline

import (
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
)

// ListQuery is the listing input shared by every surface.
type ListQuery struct {
	Page     int
	Limit    int
	SortBy   string
	SortType string
}

// Search is the free-text part of a video listing. With Indexed set the
// text was already resolved by the search index into Hits.
type Search struct {
	Text    string
	Indexed bool
	Hits    []string
}

var (
	videoColumns = []string{"video_id", "title", "description", "duration", "views", "is_published",
		"video_file_url", "thumbnail_url", "created_at", "updated_at"}
	dashboardColumns = []string{"video_id", "title", "description", "duration", "views", "is_published",
		"thumbnail_url", "created_at"}
	commentColumns      = []string{"comment_id", "video_id", "content", "created_at", "updated_at"}
	tweetColumns        = []string{"tweet_id", "content", "created_at", "updated_at"}
	playlistColumns     = []string{"playlist_id", "name", "description", "created_at", "updated_at"}
	subscriberColumns   = []string{"subscription_id", "subscriber_id", "created_at"}
	channelColumns      = []string{"subscription_id", "channel_id", "created_at"}
	channelStatsColumns = []string{"user_id", "user_name", "full_name", "avatar_url"}
)

// Public sort keys per surface, mapped to the column or output they order by.
var (
	videoSortKeys = map[string]string{
		"createdAt": "created_at", "views": "views", "duration": "duration",
		"title": "title", "likesCount": "likes_count",
	}
	commentSortKeys  = map[string]string{"createdAt": "created_at", "likesCount": "likes_count"}
	playlistSortKeys = map[string]string{"createdAt": "created_at", "updatedAt": "updated_at", "name": "name"}
	entrySortKeys    = map[string]string{
		"createdAt": "created_at", "position": "position", "views": "views", "title": "title",
	}
	likedSortKeys        = map[string]string{"createdAt": "created_at", "views": "views", "likesCount": "likes_count"}
	subscriptionSortKeys = map[string]string{"createdAt": "created_at"}
)

var newestFirst = Sort{Field: "created_at", Desc: true}

// Builder accumulates stages and the first error met while resolving input.
type Builder struct {
	stages []Stage
	err    error
}

func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Add(s ...Stage) *Builder {
	b.stages = append(b.stages, s...)
	return b
}

// SortBy resolves a public sort key. An empty key keeps def.
func (b *Builder) SortBy(keys map[string]string, q ListQuery, def Sort) *Builder {
	if b.err != nil {
		return b
	}
	s, err := resolveSort(keys, q.SortBy, q.SortType, def)
	if err != nil {
		b.err = err
		return b
	}
	return b.Add(s)
}

// Window appends the page window of q.
func (b *Builder) Window(q ListQuery) *Builder {
	if b.err != nil {
		return b
	}
	w, err := NewWindow(q.Page, q.Limit)
	if err != nil {
		b.err = err
		return b
	}
	return b.Add(w)
}

func (b *Builder) Build() ([]Stage, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := Validate(b.stages); err != nil {
		return nil, err
	}
	return b.stages, nil
}

func resolveSort(keys map[string]string, sortBy, sortType string, def Sort) (Sort, error) {
	s := def
	if sortBy != "" {
		field, ok := keys[sortBy]
		if !ok {
			return Sort{}, errno.ParamErr.WithMessage("unsupported sortBy: " + sortBy)
		}
		s = Sort{Field: field, Desc: true}
	}
	switch strings.ToLower(sortType) {
	case "":
	case "asc":
		s.Desc = false
	case "desc":
		s.Desc = true
	default:
		return Sort{}, errno.ParamErr.WithMessage("sortType must be asc or desc")
	}
	return s, nil
}

func ownerJoin(local, as string) Join {
	return Join{Op: JoinOwner, LocalField: local, As: as}
}

func likeStages(target model.Kind, key, viewer string) []Stage {
	return []Stage{
		Derive{Op: DeriveLikesCount, Target: target, Key: key, As: "likes_count"},
		Derive{Op: DeriveIsLiked, Target: target, Key: key, Viewer: viewer, As: "is_liked"},
	}
}

func channelStages(key, viewer, prefix string) []Stage {
	return []Stage{
		Derive{Op: DeriveSubscriberCount, Key: key, As: prefix + "subscriber_count"},
		Derive{Op: DeriveIsSubscribed, Key: key, Viewer: viewer, As: prefix + "is_subscribed"},
	}
}

// VideoFeed lists published videos, optionally of one owner and matching
// free text. The published filter is always applied.
func VideoFeed(viewer, ownerID string, search Search, q ListQuery) ([]Stage, error) {
	b := NewBuilder().Add(Filter{Op: FilterEq, Field: "is_published", Value: true})
	if ownerID != "" {
		b.Add(Filter{Op: FilterEq, Field: "owner_id", Value: ownerID})
	}
	if search.Text != "" {
		if search.Indexed {
			b.Add(Filter{Op: FilterIn, Field: "video_id", Value: nonNil(search.Hits)})
		} else {
			b.Add(Filter{Op: FilterText, Value: search.Text, Fields: []string{"title", "description"}})
		}
	}
	b.Add(ownerJoin("owner_id", "owner"))
	b.Add(likeStages(model.KindVideo, "video_id", viewer)...)
	return b.SortBy(videoSortKeys, q, newestFirst).
		Add(Project{Columns: videoColumns}).
		Window(q).
		Build()
}

// VideoDetail loads one video visible to viewer: published, or owned by viewer.
func VideoDetail(viewer, videoID string) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterEq, Field: "video_id", Value: videoID},
		Filter{Op: FilterVisible, Field: "is_published", OwnerField: "owner_id", Value: viewer},
		ownerJoin("owner_id", "owner"),
	)
	b.Add(likeStages(model.KindVideo, "video_id", viewer)...)
	b.Add(channelStages("owner_id", viewer, "owner_")...)
	return b.Add(Project{Columns: videoColumns}).Build()
}

// ChannelVideos lists every video of the viewer's own channel.
func ChannelVideos(viewer string, q ListQuery) ([]Stage, error) {
	return NewBuilder().
		Add(Filter{Op: FilterEq, Field: "owner_id", Value: viewer}).
		Add(Derive{Op: DeriveLikesCount, Target: model.KindVideo, Key: "video_id", As: "likes_count"}).
		SortBy(videoSortKeys, q, newestFirst).
		Add(Project{Columns: dashboardColumns}).
		Window(q).
		Build()
}

func VideoComments(viewer, videoID string, q ListQuery) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterEq, Field: "video_id", Value: videoID},
		ownerJoin("owner_id", "owner"),
	)
	b.Add(likeStages(model.KindComment, "comment_id", viewer)...)
	return b.SortBy(commentSortKeys, q, newestFirst).
		Add(Project{Columns: commentColumns}).
		Window(q).
		Build()
}

func UserTweets(viewer, ownerID string, q ListQuery) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterEq, Field: "owner_id", Value: ownerID},
		ownerJoin("owner_id", "owner"),
	)
	b.Add(likeStages(model.KindTweet, "tweet_id", viewer)...)
	return b.SortBy(commentSortKeys, q, newestFirst).
		Add(Project{Columns: tweetColumns}).
		Window(q).
		Build()
}

// UserPlaylists counts every member video, published or not.
func UserPlaylists(ownerID string, q ListQuery) ([]Stage, error) {
	return NewBuilder().
		Add(Filter{Op: FilterEq, Field: "owner_id", Value: ownerID}).
		Add(Derive{Op: DerivePlaylistTotals, Key: "playlist_id"}).
		SortBy(playlistSortKeys, q, newestFirst).
		Add(Project{Columns: playlistColumns}).
		Window(q).
		Build()
}

// PlaylistDetail loads the playlist header; totals cover published videos.
func PlaylistDetail(playlistID string) ([]Stage, error) {
	return NewBuilder().Add(
		Filter{Op: FilterEq, Field: "playlist_id", Value: playlistID},
		ownerJoin("owner_id", "owner"),
		Derive{Op: DerivePlaylistTotals, Key: "playlist_id", PublishedOnly: true},
		Project{Columns: playlistColumns},
	).Build()
}

// PlaylistVideos lists the published member videos, in playlist order by default.
func PlaylistVideos(viewer, playlistID string, q ListQuery) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterEq, Field: "is_published", Value: true},
		Join{Op: JoinPlaylistEntry, LocalField: "video_id", PlaylistID: playlistID, As: "pv"},
		ownerJoin("owner_id", "owner"),
	)
	b.Add(likeStages(model.KindVideo, "video_id", viewer)...)
	return b.SortBy(entrySortKeys, q, Sort{Field: "position"}).
		Add(Project{Columns: videoColumns}).
		Window(q).
		Build()
}

func LikedVideos(viewer string, q ListQuery) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterEq, Field: "is_published", Value: true},
		Join{Op: JoinLikedBy, LocalField: "video_id", Viewer: viewer, Target: model.KindVideo, As: "lk"},
		ownerJoin("owner_id", "owner"),
	)
	b.Add(likeStages(model.KindVideo, "video_id", viewer)...)
	return b.SortBy(likedSortKeys, q, newestFirst).
		Add(Project{Columns: videoColumns}).
		Window(q).
		Build()
}

func ChannelSubscribers(viewer, channelID string, q ListQuery) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterEq, Field: "channel_id", Value: channelID},
		ownerJoin("subscriber_id", "subscriber"),
	)
	b.Add(channelStages("subscriber_id", viewer, "subscriber_")...)
	return b.SortBy(subscriptionSortKeys, q, newestFirst).
		Add(Project{Columns: subscriberColumns}).
		Window(q).
		Build()
}

func SubscribedChannels(viewer, subscriberID string, q ListQuery) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterEq, Field: "subscriber_id", Value: subscriberID},
		ownerJoin("channel_id", "channel"),
	)
	b.Add(channelStages("channel_id", viewer, "channel_")...)
	return b.SortBy(subscriptionSortKeys, q, newestFirst).
		Add(Project{Columns: channelColumns}).
		Window(q).
		Build()
}

// HistoryVideos loads the published videos among ids. Ordering and paging
// follow the history itself and are applied by the caller.
func HistoryVideos(viewer string, ids []string) ([]Stage, error) {
	b := NewBuilder().Add(
		Filter{Op: FilterIn, Field: "video_id", Value: nonNil(ids)},
		Filter{Op: FilterEq, Field: "is_published", Value: true},
		ownerJoin("owner_id", "owner"),
	)
	b.Add(likeStages(model.KindVideo, "video_id", viewer)...)
	return b.Add(Project{Columns: videoColumns}).Build()
}

func ChannelStats(channelID string) ([]Stage, error) {
	return NewBuilder().Add(
		Filter{Op: FilterEq, Field: "user_id", Value: channelID},
		Derive{Op: DeriveSubscriberCount, Key: "user_id", As: "subscriber_count"},
		Derive{Op: DeriveChannelTotals, Key: "user_id"},
		Derive{Op: DeriveChannelLikes, Key: "user_id"},
		Project{Columns: channelStatsColumns},
	).Build()
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

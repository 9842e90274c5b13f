package pipeline

import (
	"testing"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ranks(stages []Stage) []Rank {
	out := make([]Rank, len(stages))
	for i, s := range stages {
		out[i] = s.Rank()
	}
	return out
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate([]Stage{Filter{}, Filter{}, Join{}, Derive{}, Derive{}, Sort{}, Project{}, Window{}}))
	require.NoError(t, Validate([]Stage{Project{}}))

	for name, stages := range map[string][]Stage{
		"no project":        {Filter{}, Sort{}},
		"sort before join":  {Sort{}, Join{}, Project{}},
		"window first":      {Window{}, Project{}},
		"two sorts":         {Sort{}, Sort{}, Project{}},
		"derive after sort": {Sort{}, Derive{}, Project{}},
		"nil stage":         {nil, Project{}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, Validate(stages))
		})
	}
}

func TestVideoFeedAlwaysFiltersPublished(t *testing.T) {
	queries := []ListQuery{
		{},
		{SortBy: "views", SortType: "asc"},
		{SortBy: "likesCount", Page: 3, Limit: 7},
	}
	for _, q := range queries {
		stages, err := VideoFeed("viewer", "", Search{Text: "cats"}, q)
		require.NoError(t, err)
		f, ok := stages[0].(Filter)
		require.True(t, ok)
		assert.Equal(t, Filter{Op: FilterEq, Field: "is_published", Value: true}, f)
	}
}

func TestVideoFeedStages(t *testing.T) {
	stages, err := VideoFeed("v1", "o1", Search{Text: "go"}, ListQuery{SortBy: "views", SortType: "ASC", Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, []Rank{RankFilter, RankFilter, RankFilter, RankJoin, RankDerive, RankDerive, RankSort, RankProject, RankWindow}, ranks(stages))
	assert.Equal(t, Filter{Op: FilterText, Value: "go", Fields: []string{"title", "description"}}, stages[2])
	assert.Equal(t, Sort{Field: "views"}, stages[6])
	assert.Equal(t, Window{Page: 2, Limit: 5}, stages[8])

	d := stages[5].(Derive)
	assert.Equal(t, DeriveIsLiked, d.Op)
	assert.Equal(t, "v1", d.Viewer)
	assert.Equal(t, model.KindVideo, d.Target)
}

func TestVideoFeedIndexedSearch(t *testing.T) {
	stages, err := VideoFeed("v1", "", Search{Text: "go", Indexed: true}, ListQuery{})
	require.NoError(t, err)
	f := stages[1].(Filter)
	assert.Equal(t, FilterIn, f.Op)
	assert.Equal(t, []string{}, f.Value)
}

func TestProjectHidesMediaIdentifiers(t *testing.T) {
	for _, cols := range [][]string{videoColumns, dashboardColumns} {
		assert.NotContains(t, cols, "video_file_id")
		assert.NotContains(t, cols, "thumbnail_id")
		assert.NotContains(t, cols, "owner_id")
	}
}

func TestSortValidation(t *testing.T) {
	_, err := VideoFeed("v", "", Search{}, ListQuery{SortBy: "password"})
	assert.True(t, errno.IsValidation(err))

	_, err = VideoComments("v", "vid", ListQuery{SortType: "sideways"})
	assert.True(t, errno.IsValidation(err))

	_, err = UserTweets("v", "o", ListQuery{Limit: -2})
	assert.True(t, errno.IsValidation(err))
}

func TestDefaultSorts(t *testing.T) {
	stages, err := PlaylistVideos("v", "p", ListQuery{})
	require.NoError(t, err)
	for _, s := range stages {
		if srt, ok := s.(Sort); ok {
			assert.Equal(t, Sort{Field: "position"}, srt)
		}
	}

	stages, err = UserPlaylists("o", ListQuery{SortBy: "name"})
	require.NoError(t, err)
	assert.Contains(t, stages, Stage(Sort{Field: "name", Desc: true}))
}

func TestEverySurfaceBuilds(t *testing.T) {
	q := ListQuery{}
	builds := map[string]func() ([]Stage, error){
		"detail":      func() ([]Stage, error) { return VideoDetail("v", "x") },
		"dashboard":   func() ([]Stage, error) { return ChannelVideos("v", q) },
		"comments":    func() ([]Stage, error) { return VideoComments("v", "x", q) },
		"tweets":      func() ([]Stage, error) { return UserTweets("v", "x", q) },
		"playlists":   func() ([]Stage, error) { return UserPlaylists("x", q) },
		"playlist":    func() ([]Stage, error) { return PlaylistDetail("x") },
		"entries":     func() ([]Stage, error) { return PlaylistVideos("v", "x", q) },
		"liked":       func() ([]Stage, error) { return LikedVideos("v", q) },
		"subscribers": func() ([]Stage, error) { return ChannelSubscribers("v", "x", q) },
		"channels":    func() ([]Stage, error) { return SubscribedChannels("v", "x", q) },
		"history":     func() ([]Stage, error) { return HistoryVideos("v", nil) },
		"stats":       func() ([]Stage, error) { return ChannelStats("x") },
	}
	for name, build := range builds {
		t.Run(name, func(t *testing.T) {
			stages, err := build()
			require.NoError(t, err)
			assert.NoError(t, Validate(stages))
		})
	}
}

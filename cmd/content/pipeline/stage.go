// Package pipeline describes listing queries as an ordered list of stages.
// Stages are plain values; cmd/content/dal/db compiles them into one SQL
// statement per listing.
package pipeline

import (
	"fmt"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
)

// Stage is one of Filter, Join, Derive, Sort, Project or Window.
type Stage interface {
	Rank() Rank
	stage()
}

// Rank fixes the order stages must appear in.
type Rank int

const (
	RankFilter Rank = iota + 1
	RankJoin
	RankDerive
	RankSort
	RankProject
	RankWindow
)

func (r Rank) String() string {
	switch r {
	case RankFilter:
		return "filter"
	case RankJoin:
		return "join"
	case RankDerive:
		return "derive"
	case RankSort:
		return "sort"
	case RankProject:
		return "project"
	case RankWindow:
		return "window"
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

type FilterOp int

const (
	FilterEq FilterOp = iota
	FilterIn
	// FilterText matches Value as a substring of any of Fields.
	FilterText
	// FilterVisible keeps rows where Field is true or OwnerField equals Value.
	FilterVisible
)

// Filter columns name base-table columns.
type Filter struct {
	Op         FilterOp
	Field      string
	Value      interface{}
	Fields     []string
	OwnerField string
}

type JoinOp int

const (
	// JoinOwner pulls the owner summary (username, full name, avatar) of the
	// user referenced by LocalField. Columns come out as <As>_user_name etc.
	JoinOwner JoinOp = iota
	// JoinPlaylistEntry restricts videos to members of PlaylistID and exposes
	// the membership position.
	JoinPlaylistEntry
	// JoinLikedBy restricts rows to targets liked by Viewer.
	JoinLikedBy
)

type Join struct {
	Op         JoinOp
	LocalField string
	As         string
	PlaylistID string
	Viewer     string
	Target     model.Kind
}

type DeriveOp int

const (
	DeriveLikesCount DeriveOp = iota
	DeriveIsLiked
	DeriveSubscriberCount
	DeriveIsSubscribed
	// DerivePlaylistTotals yields <As>total_videos and <As>total_views.
	DerivePlaylistTotals
	// DeriveChannelTotals yields <As>total_videos and <As>total_views over
	// the videos owned by the channel.
	DeriveChannelTotals
	// DeriveChannelLikes yields <As>total_likes over the channel's videos.
	DeriveChannelLikes
)

// Derive adds computed columns keyed by Key, a base column or a qualified
// column of an earlier join. Single-output ops name their column As, the
// totals ops use As as a prefix.
type Derive struct {
	Op            DeriveOp
	Target        model.Kind
	Key           string
	Viewer        string
	As            string
	PublishedOnly bool
}

// Sort orders by Field, then by creation time and primary key, newest first.
type Sort struct {
	Field string
	Desc  bool
}

// Project lists the base columns returned. Join and Derive outputs are
// always appended.
type Project struct {
	Columns []string
}

// Window is the 1-based page slice of the ordered result.
type Window struct {
	Page  int
	Limit int
}

func (Filter) Rank() Rank  { return RankFilter }
func (Join) Rank() Rank    { return RankJoin }
func (Derive) Rank() Rank  { return RankDerive }
func (Sort) Rank() Rank    { return RankSort }
func (Project) Rank() Rank { return RankProject }
func (Window) Rank() Rank  { return RankWindow }

func (Filter) stage()  {}
func (Join) stage()    {}
func (Derive) stage()  {}
func (Sort) stage()    {}
func (Project) stage() {}
func (Window) stage()  {}

// Validate checks stage order. Filter, Join and Derive may repeat; Sort,
// Project and Window appear at most once and Project is required.
func Validate(stages []Stage) error {
	var last Rank
	seen := map[Rank]bool{}
	for i, s := range stages {
		if s == nil {
			return errno.ServiceErr.WithMessage(fmt.Sprintf("pipeline stage %d is nil", i))
		}
		r := s.Rank()
		if r < last {
			return errno.ServiceErr.WithMessage(fmt.Sprintf("pipeline stage %d: %s after %s", i, r, last))
		}
		if seen[r] && r >= RankSort {
			return errno.ServiceErr.WithMessage(fmt.Sprintf("pipeline stage %d: duplicate %s", i, r))
		}
		seen[r] = true
		last = r
	}
	if !seen[RankProject] {
		return errno.ServiceErr.WithMessage("pipeline has no project stage")
	}
	return nil
}

// WindowOf returns the Window stage of stages, if any.
func WindowOf(stages []Stage) (Window, bool) {
	for _, s := range stages {
		if w, ok := s.(Window); ok {
			return w, true
		}
	}
	return Window{}, false
}

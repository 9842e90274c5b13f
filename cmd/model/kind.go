package model

// Kind names one persisted collection.
type Kind string

const (
	KindUser         Kind = "user"
	KindVideo        Kind = "video"
	KindComment      Kind = "comment"
	KindTweet        Kind = "tweet"
	KindPlaylist     Kind = "playlist"
	KindLike         Kind = "like"
	KindSubscription Kind = "subscription"
)

// Entity is implemented by every row type a Kind produces.
type Entity interface {
	Kind() Kind
	GetID() string
	SetID(id string)
	// OwnerID is the identity allowed to mutate the row.
	OwnerID() string
}

type kindInfo struct {
	table       string
	primaryKey  string
	ownerColumn string
	newEntity   func() Entity
}

var kinds = map[Kind]kindInfo{
	KindUser:         {"users", "user_id", "user_id", func() Entity { return &User{} }},
	KindVideo:        {"videos", "video_id", "owner_id", func() Entity { return &Video{} }},
	KindComment:      {"comments", "comment_id", "owner_id", func() Entity { return &Comment{} }},
	KindTweet:        {"tweets", "tweet_id", "owner_id", func() Entity { return &Tweet{} }},
	KindPlaylist:     {"playlists", "playlist_id", "owner_id", func() Entity { return &Playlist{} }},
	KindLike:         {"likes", "like_id", "liked_by", func() Entity { return &Like{} }},
	KindSubscription: {"subscriptions", "subscription_id", "subscriber_id", func() Entity { return &Subscription{} }},
}

func (k Kind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

func (k Kind) Table() string { return kinds[k].table }

func (k Kind) PrimaryKey() string { return kinds[k].primaryKey }

func (k Kind) OwnerColumn() string { return kinds[k].ownerColumn }

// New returns an empty row of the kind, or nil for an unknown kind.
func (k Kind) New() Entity {
	info, ok := kinds[k]
	if !ok {
		return nil
	}
	return info.newEntity()
}

// Likeable reports whether a Like may target the kind.
func (k Kind) Likeable() bool {
	return k == KindVideo || k == KindComment || k == KindTweet
}

// Models lists every table for AutoMigrate.
func Models() []interface{} {
	return []interface{}{
		&User{}, &Video{}, &Comment{}, &Tweet{}, &Playlist{}, &PlaylistVideo{}, &Like{}, &Subscription{},
	}
}

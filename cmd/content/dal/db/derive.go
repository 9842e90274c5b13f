package db

import (
	"fmt"

	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"gorm.io/gorm"
)

// applyDerive joins one grouped sub-select per Derive stage, so counts and
// viewer flags for a whole page cost a single statement.
func (c *compiled) applyDerive(q *gorm.DB, d pipeline.Derive, i int) (*gorm.DB, error) {
	alias := fmt.Sprintf("d%d", i)
	key := column(d.Key)

	switch d.Op {
	case pipeline.DeriveLikesCount:
		if !d.Target.Likeable() {
			return nil, errno.ServiceErr.WithMessage("likes count on " + string(d.Target))
		}
		q = q.Joins(fmt.Sprintf("LEFT JOIN (SELECT target_id, COUNT(*) AS cnt FROM likes WHERE target_kind = ? GROUP BY target_id) %s ON %s.target_id = %s",
			alias, alias, key), string(d.Target))
		c.output(fmt.Sprintf("COALESCE(%s.cnt, 0)", alias), d.As)

	case pipeline.DeriveIsLiked:
		if !d.Target.Likeable() {
			return nil, errno.ServiceErr.WithMessage("is liked on " + string(d.Target))
		}
		if d.Viewer == "" {
			c.output("0", d.As)
			return q, nil
		}
		q = q.Joins(fmt.Sprintf("LEFT JOIN (SELECT target_id FROM likes WHERE target_kind = ? AND liked_by = ?) %s ON %s.target_id = %s",
			alias, alias, key), string(d.Target), d.Viewer)
		c.output(present(alias+".target_id"), d.As)

	case pipeline.DeriveSubscriberCount:
		q = q.Joins(fmt.Sprintf("LEFT JOIN (SELECT channel_id, COUNT(*) AS cnt FROM subscriptions GROUP BY channel_id) %s ON %s.channel_id = %s",
			alias, alias, key))
		c.output(fmt.Sprintf("COALESCE(%s.cnt, 0)", alias), d.As)

	case pipeline.DeriveIsSubscribed:
		if d.Viewer == "" {
			c.output("0", d.As)
			return q, nil
		}
		q = q.Joins(fmt.Sprintf("LEFT JOIN (SELECT channel_id FROM subscriptions WHERE subscriber_id = ?) %s ON %s.channel_id = %s",
			alias, alias, key), d.Viewer)
		c.output(present(alias+".channel_id"), d.As)

	case pipeline.DerivePlaylistTotals:
		where := ""
		var args []interface{}
		if d.PublishedOnly {
			where = " WHERE v.is_published = ?"
			args = append(args, true)
		}
		q = q.Joins(fmt.Sprintf("LEFT JOIN (SELECT pv.playlist_id, COUNT(*) AS videos, COALESCE(SUM(v.views), 0) AS views FROM playlist_videos pv INNER JOIN videos v ON v.video_id = pv.video_id%s GROUP BY pv.playlist_id) %s ON %s.playlist_id = %s",
			where, alias, alias, key), args...)
		c.output(fmt.Sprintf("COALESCE(%s.videos, 0)", alias), d.As+"total_videos")
		c.output(fmt.Sprintf("COALESCE(%s.views, 0)", alias), d.As+"total_views")

	case pipeline.DeriveChannelTotals:
		q = q.Joins(fmt.Sprintf("LEFT JOIN (SELECT owner_id, COUNT(*) AS videos, COALESCE(SUM(views), 0) AS views FROM videos GROUP BY owner_id) %s ON %s.owner_id = %s",
			alias, alias, key))
		c.output(fmt.Sprintf("COALESCE(%s.videos, 0)", alias), d.As+"total_videos")
		c.output(fmt.Sprintf("COALESCE(%s.views, 0)", alias), d.As+"total_views")

	case pipeline.DeriveChannelLikes:
		q = q.Joins(fmt.Sprintf("LEFT JOIN (SELECT v.owner_id, COUNT(*) AS cnt FROM likes l INNER JOIN videos v ON v.video_id = l.target_id WHERE l.target_kind = ? GROUP BY v.owner_id) %s ON %s.owner_id = %s",
			alias, alias, key), string(model.KindVideo))
		c.output(fmt.Sprintf("COALESCE(%s.cnt, 0)", alias), d.As+"total_likes")

	default:
		return nil, errno.ServiceErr.WithMessage(fmt.Sprintf("unsupported derive op %d", d.Op))
	}
	return q, nil
}

func present(col string) string {
	return fmt.Sprintf("CASE WHEN %s IS NULL THEN 0 ELSE 1 END", col)
}

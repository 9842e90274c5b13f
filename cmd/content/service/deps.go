package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/mq"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/search"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// WatchHistory is the per viewer list of watched videos, newest first.
type WatchHistory interface {
	Record(ctx context.Context, viewer, videoID string) error
	List(ctx context.Context, viewer string) ([]string, error)
}

// Deps are the collaborators every content service works against.
// Index, History and Events are optional.
type Deps struct {
	Store   *db.Store
	Media   oss.MediaStore
	Index   search.Index
	History WatchHistory
	Events  mq.EventPublisher
}

// publish sends a content event when a publisher is configured.
func (d *Deps) publish(ctx context.Context, typ mq.EventType, actor, kind, id string, active bool) error {
	if d.Events == nil {
		return nil
	}
	event := mq.NewContentEvent(typ, actor, kind, id)
	event.Active = active
	if err := d.Events.PublishContentEvent(ctx, event); err != nil {
		hlog.CtxErrorf(ctx, "publish %s event for %s %s failed: %v", typ, kind, id, err)
		return errno.ServiceErr.WithMessage("publish " + string(typ) + " event failed")
	}
	return nil
}

// viewerID normalizes the identity handed over by the gateway.
func viewerID(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", errno.AuthorizationFailedErr
	}
	return utils.NormalizeID(raw)
}

// required takes name, value pairs and fails on the first blank value.
func required(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			return errno.ParamErr.WithMessage(pairs[i] + " is required")
		}
	}
	return nil
}

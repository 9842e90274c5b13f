package service

import (
	"context"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

type Action string

const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionPublish Action = "publish"
)

type Decision int

const (
	Allowed Decision = iota
	Forbidden
	NotFound
)

func (d Decision) String() string {
	switch d {
	case Allowed:
		return "allowed"
	case Forbidden:
		return "forbidden"
	default:
		return "not found"
	}
}

// Authorize loads the entity being mutated and compares its owner with
// viewer. Ownership of a parent entity is never consulted.
//
// The decision is not held: a concurrent request may change the row between
// Authorize and the write. Owner-scoped writes repeat the owner check in
// their UPDATE statement; deletes accept last-writer-wins.
func Authorize(ctx context.Context, store *db.Store, kind model.Kind, id, viewer string, action Action) (model.Entity, Decision, error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, Forbidden, err
	}
	e, err := store.FindByID(ctx, kind, id)
	if err != nil {
		if errno.Is(err, errno.NotFoundErr) {
			return nil, NotFound, nil
		}
		return nil, NotFound, err
	}
	if e.OwnerID() != viewer {
		hlog.CtxInfof(ctx, "viewer %s may not %s %s %s", viewer, action, kind, id)
		return e, Forbidden, nil
	}
	return e, Allowed, nil
}

// Require is Authorize with the decision turned into an error.
func Require(ctx context.Context, store *db.Store, kind model.Kind, id, viewer string, action Action) (model.Entity, error) {
	e, decision, err := Authorize(ctx, store, kind, id, viewer, action)
	if err != nil {
		return nil, err
	}
	switch decision {
	case NotFound:
		return nil, errno.NotFoundErr.WithMessage(string(kind) + " not found")
	case Forbidden:
		return nil, errno.ForbiddenErr.WithMessage("only the owner may " + string(action) + " this " + string(kind))
	}
	return e, nil
}

package service

import (
	"context"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/oss"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
)

// Mutation describes one write. It runs as Validate, Authorize, Apply,
// Cascade and stops at the first failing step, except for best-effort
// cascade steps.
type Mutation struct {
	Kind   model.Kind
	ID     string // ignored for ActionCreate, which skips Authorize
	Viewer string
	Action Action

	Validate func() error
	Apply    func(ctx context.Context, target model.Entity) error
	// Cascade is built after Apply so it can see what Apply loaded.
	Cascade func(target model.Entity) []CascadeStep
}

// CascadeStep is one dependent cleanup. Steps share no transaction; a
// failure leaves the primary change in place.
type CascadeStep struct {
	Name       string
	Run        func(ctx context.Context) error
	BestEffort bool
}

// Execute runs m and returns the authorized target, nil for creates.
func (d *Deps) Execute(ctx context.Context, m Mutation) (model.Entity, error) {
	if m.Validate != nil {
		if err := m.Validate(); err != nil {
			return nil, err
		}
	}

	var target model.Entity
	if m.Action != ActionCreate {
		id, err := utils.NormalizeID(m.ID)
		if err != nil {
			return nil, err
		}
		if target, err = Require(ctx, d.Store, m.Kind, id, m.Viewer, m.Action); err != nil {
			return nil, err
		}
	}

	if m.Apply != nil {
		if err := m.Apply(ctx, target); err != nil {
			return nil, err
		}
	}

	if m.Cascade == nil {
		return target, nil
	}
	for _, step := range m.Cascade(target) {
		if err := step.Run(ctx); err != nil {
			if step.BestEffort {
				hlog.CtxWarnf(ctx, "%s %s %s: %s failed, continuing: %v", m.Action, m.Kind, m.ID, step.Name, err)
				continue
			}
			hlog.CtxErrorf(ctx, "%s %s %s: %s failed: %v", m.Action, m.Kind, m.ID, step.Name, err)
			return nil, err
		}
	}
	return target, nil
}

// deleteMedia is the best-effort removal of a stored asset.
func (d *Deps) deleteMedia(name, id string, kind oss.MediaKind) CascadeStep {
	return CascadeStep{
		Name:       name,
		BestEffort: true,
		Run: func(ctx context.Context) error {
			if d.Media == nil || id == "" {
				return nil
			}
			removed, err := d.Media.Delete(ctx, id, kind)
			if err != nil {
				return err
			}
			if !removed {
				hlog.CtxInfof(ctx, "%s asset %s was already gone", kind, id)
			}
			return nil
		},
	}
}

// discardMedia drops an asset uploaded by a write that then failed.
func (d *Deps) discardMedia(ctx context.Context, id string, kind oss.MediaKind) {
	if err := d.deleteMedia("discard upload", id, kind).Run(ctx); err != nil {
		hlog.CtxWarnf(ctx, "discard uploaded %s %s failed: %v", kind, id, err)
	}
}

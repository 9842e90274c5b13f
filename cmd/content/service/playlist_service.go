package service

import (
	"context"
	"strings"

	"VidTube.com/cmd/content/dal/db"
	"VidTube.com/cmd/content/pipeline"
	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
)

type PlaylistService struct {
	ctx  context.Context
	deps *Deps
}

func NewPlaylistService(ctx context.Context, deps *Deps) *PlaylistService {
	return &PlaylistService{ctx: ctx, deps: deps}
}

func (s *PlaylistService) CreatePlaylist(viewer, name, description string) (*model.Playlist, error) {
	playlist := &model.Playlist{Name: strings.TrimSpace(name), Description: strings.TrimSpace(description)}
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindPlaylist,
		Viewer: viewer,
		Action: ActionCreate,
		Validate: func() error {
			owner, err := viewerID(viewer)
			if err != nil {
				return err
			}
			playlist.OwnerId = owner
			return required("name", playlist.Name, "description", playlist.Description)
		},
		Apply: func(ctx context.Context, _ model.Entity) error {
			return s.deps.Store.CreateOne(ctx, playlist)
		},
	})
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *PlaylistService) UserPlaylists(ownerID string, q pipeline.ListQuery) (*pipeline.Page[pipeline.PlaylistRow], error) {
	ownerID, err := mustExist(s.ctx, s.deps.Store, model.KindUser, ownerID)
	if err != nil {
		return nil, err
	}
	stages, err := pipeline.UserPlaylists(ownerID, q)
	if err != nil {
		return nil, err
	}
	return runPage[pipeline.PlaylistRow](s.ctx, s.deps.Store, model.KindPlaylist, stages)
}

// GetPlaylist returns the playlist header with one page of its published videos.
func (s *PlaylistService) GetPlaylist(viewer, playlistID string, q pipeline.ListQuery) (*pipeline.PlaylistDetailRow, error) {
	viewer, err := viewerID(viewer)
	if err != nil {
		return nil, err
	}
	if playlistID, err = utils.NormalizeID(playlistID); err != nil {
		return nil, err
	}
	stages, err := pipeline.PlaylistDetail(playlistID)
	if err != nil {
		return nil, err
	}
	var rows []pipeline.PlaylistDetailRow
	if _, err = s.deps.Store.RunPipeline(s.ctx, model.KindPlaylist, stages, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errno.NotFoundErr.WithMessage("playlist not found")
	}

	if stages, err = pipeline.PlaylistVideos(viewer, playlistID, q); err != nil {
		return nil, err
	}
	videos, err := runPage[pipeline.PlaylistVideoRow](s.ctx, s.deps.Store, model.KindVideo, stages)
	if err != nil {
		return nil, err
	}
	detail := &rows[0]
	detail.Videos = videos
	return detail, nil
}

func (s *PlaylistService) UpdatePlaylist(viewer, playlistID, name, description string) (*model.Playlist, error) {
	name, description = strings.TrimSpace(name), strings.TrimSpace(description)
	var updated model.Entity
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindPlaylist,
		ID:     playlistID,
		Viewer: viewer,
		Action: ActionUpdate,
		Validate: func() error {
			return required("name", name, "description", description)
		},
		Apply: func(ctx context.Context, target model.Entity) error {
			var err error
			updated, err = s.deps.Store.UpdateOwnedByID(ctx, model.KindPlaylist, target.GetID(), target.OwnerID(),
				db.Cond{"name": name, "description": description})
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return updated.(*model.Playlist), nil
}

// DeletePlaylist removes the playlist and its memberships. Member videos stay.
func (s *PlaylistService) DeletePlaylist(viewer, playlistID string) error {
	_, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindPlaylist,
		ID:     playlistID,
		Viewer: viewer,
		Action: ActionDelete,
		Apply: func(ctx context.Context, target model.Entity) error {
			_, err := s.deps.Store.DeleteByID(ctx, model.KindPlaylist, target.GetID())
			return err
		},
		Cascade: func(target model.Entity) []CascadeStep {
			return []CascadeStep{{Name: "playlist entries", Run: func(ctx context.Context) error {
				_, err := s.deps.Store.DeletePlaylistEntries(ctx, db.Cond{"playlist_id": target.GetID()})
				return err
			}}}
		},
	})
	return err
}

// AddVideo puts videoID into the playlist. Adding a member again is a no-op.
func (s *PlaylistService) AddVideo(viewer, playlistID, videoID string) (*model.Playlist, error) {
	target, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindPlaylist,
		ID:     playlistID,
		Viewer: viewer,
		Action: ActionUpdate,
		Validate: func() error {
			_, err := utils.NormalizeIDs(playlistID, videoID)
			return err
		},
		Apply: func(ctx context.Context, target model.Entity) error {
			id, err := mustExist(ctx, s.deps.Store, model.KindVideo, videoID)
			if err != nil {
				return err
			}
			_, err = s.deps.Store.AddPlaylistVideo(ctx, target.GetID(), id)
			return err
		},
	})
	if err != nil {
		return nil, err
	}
	return target.(*model.Playlist), nil
}

func (s *PlaylistService) RemoveVideo(viewer, playlistID, videoID string) (*model.Playlist, error) {
	target, err := s.deps.Execute(s.ctx, Mutation{
		Kind:   model.KindPlaylist,
		ID:     playlistID,
		Viewer: viewer,
		Action: ActionUpdate,
		Validate: func() error {
			_, err := utils.NormalizeIDs(playlistID, videoID)
			return err
		},
		Apply: func(ctx context.Context, target model.Entity) error {
			removed, err := s.deps.Store.RemovePlaylistVideo(ctx, target.GetID(), videoID)
			if err != nil {
				return err
			}
			if !removed {
				return errno.NotFoundErr.WithMessage("video is not in this playlist")
			}
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return target.(*model.Playlist), nil
}

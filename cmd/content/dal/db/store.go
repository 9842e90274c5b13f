package db

import (
	"context"
	"fmt"
	"strings"

	"VidTube.com/cmd/model"
	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Cond is an equality condition set; slice values become IN lists.
type Cond map[string]interface{}

// Store gives typed access to the content tables. Every id argument is
// normalized first, so a malformed id never reaches the database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get loads one row of kind and asserts its concrete type.
func Get[T model.Entity](ctx context.Context, s *Store, kind model.Kind, id string) (T, error) {
	var zero T
	e, err := s.FindByID(ctx, kind, id)
	if err != nil {
		return zero, err
	}
	t, ok := e.(T)
	if !ok {
		return zero, errno.ServiceErr.WithMessage(fmt.Sprintf("%s row has type %T", kind, e))
	}
	return t, nil
}

func (s *Store) FindByID(ctx context.Context, kind model.Kind, id string) (model.Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	id, err := utils.NormalizeID(id)
	if err != nil {
		return nil, err
	}
	e := kind.New()
	err = s.db.WithContext(ctx).Where(kind.PrimaryKey()+" = ?", id).Take(e).Error
	if err != nil {
		return nil, s.convert(ctx, err, kind, "find")
	}
	return e, nil
}

func (s *Store) Exists(ctx context.Context, kind model.Kind, id string) (bool, error) {
	if err := checkKind(kind); err != nil {
		return false, err
	}
	id, err := utils.NormalizeID(id)
	if err != nil {
		return false, err
	}
	var n int64
	err = s.db.WithContext(ctx).Model(kind.New()).Where(kind.PrimaryKey()+" = ?", id).Count(&n).Error
	if err != nil {
		return false, s.convert(ctx, err, kind, "exists")
	}
	return n > 0, nil
}

// FindOne returns the first row matching cond, or NotFound.
func (s *Store) FindOne(ctx context.Context, kind model.Kind, cond Cond) (model.Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	e := kind.New()
	err := s.db.WithContext(ctx).Where(map[string]interface{}(cond)).Take(e).Error
	if err != nil {
		return nil, s.convert(ctx, err, kind, "find one")
	}
	return e, nil
}

// CreateOne inserts e, assigning a fresh id when it has none.
func (s *Store) CreateOne(ctx context.Context, e model.Entity) error {
	if e.GetID() == "" {
		e.SetID(utils.NewID())
	} else {
		id, err := utils.NormalizeID(e.GetID())
		if err != nil {
			return err
		}
		e.SetID(id)
	}
	if err := s.db.WithContext(ctx).Create(e).Error; err != nil {
		return s.convert(ctx, err, e.Kind(), "create")
	}
	return nil
}

// UpdateByID applies patch and returns the row as stored afterwards.
func (s *Store) UpdateByID(ctx context.Context, kind model.Kind, id string, patch Cond) (model.Entity, error) {
	return s.update(ctx, kind, id, "", patch)
}

// UpdateOwnedByID applies patch only when the row still belongs to owner,
// in the same statement. A row owned by someone else yields Forbidden.
func (s *Store) UpdateOwnedByID(ctx context.Context, kind model.Kind, id, owner string, patch Cond) (model.Entity, error) {
	if owner == "" {
		return nil, errno.ForbiddenErr
	}
	return s.update(ctx, kind, id, owner, patch)
}

func (s *Store) update(ctx context.Context, kind model.Kind, id, owner string, patch Cond) (model.Entity, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	id, err := utils.NormalizeID(id)
	if err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return s.resolveUnchanged(ctx, kind, id, owner)
	}
	q := s.db.WithContext(ctx).Model(kind.New()).Where(kind.PrimaryKey()+" = ?", id)
	if owner != "" {
		q = q.Where(kind.OwnerColumn()+" = ?", owner)
	}
	res := q.Updates(map[string]interface{}(patch))
	if res.Error != nil {
		return nil, s.convert(ctx, res.Error, kind, "update")
	}
	if res.RowsAffected == 0 {
		return s.resolveUnchanged(ctx, kind, id, owner)
	}
	return s.FindByID(ctx, kind, id)
}

// resolveUnchanged explains an update that touched no row.
func (s *Store) resolveUnchanged(ctx context.Context, kind model.Kind, id, owner string) (model.Entity, error) {
	e, err := s.FindByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if owner != "" && e.OwnerID() != owner {
		return nil, errno.ForbiddenErr
	}
	return e, nil
}

// TogglePublished flips is_published in one statement guarded by owner.
func (s *Store) TogglePublished(ctx context.Context, videoID, owner string) (*model.Video, error) {
	videoID, err := utils.NormalizeID(videoID)
	if err != nil {
		return nil, err
	}
	res := s.db.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ? AND owner_id = ?", videoID, owner).
		Update("is_published", gorm.Expr("NOT is_published"))
	if res.Error != nil {
		return nil, s.convert(ctx, res.Error, model.KindVideo, "toggle publish")
	}
	if res.RowsAffected == 0 {
		if _, err = s.resolveUnchanged(ctx, model.KindVideo, videoID, owner); err != nil {
			return nil, err
		}
	}
	return Get[*model.Video](ctx, s, model.KindVideo, videoID)
}

func (s *Store) IncrementViews(ctx context.Context, videoID string) error {
	videoID, err := utils.NormalizeID(videoID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Model(&model.Video{}).
		Where("video_id = ?", videoID).
		UpdateColumn("views", gorm.Expr("views + ?", 1)).Error
	return s.convert(ctx, err, model.KindVideo, "increment views")
}

// DeleteByID reports whether a row was removed.
func (s *Store) DeleteByID(ctx context.Context, kind model.Kind, id string) (bool, error) {
	if err := checkKind(kind); err != nil {
		return false, err
	}
	id, err := utils.NormalizeID(id)
	if err != nil {
		return false, err
	}
	res := s.db.WithContext(ctx).Where(kind.PrimaryKey()+" = ?", id).Delete(kind.New())
	if res.Error != nil {
		return false, s.convert(ctx, res.Error, kind, "delete")
	}
	return res.RowsAffected > 0, nil
}

// DeleteMany removes every row matching cond. An empty cond is refused.
func (s *Store) DeleteMany(ctx context.Context, kind model.Kind, cond Cond) (int64, error) {
	if err := checkKind(kind); err != nil {
		return 0, err
	}
	if len(cond) == 0 {
		return 0, errno.ServiceErr.WithMessage("refusing to delete every " + string(kind))
	}
	res := s.db.WithContext(ctx).Where(map[string]interface{}(cond)).Delete(kind.New())
	if res.Error != nil {
		return 0, s.convert(ctx, res.Error, kind, "delete many")
	}
	return res.RowsAffected, nil
}

// PluckIDs returns the primary keys of the rows matching cond.
func (s *Store) PluckIDs(ctx context.Context, kind model.Kind, cond Cond) ([]string, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}
	var ids []string
	err := s.db.WithContext(ctx).Model(kind.New()).Where(map[string]interface{}(cond)).Pluck(kind.PrimaryKey(), &ids).Error
	if err != nil {
		return nil, s.convert(ctx, err, kind, "pluck ids")
	}
	return ids, nil
}

// AddPlaylistVideo appends videoID to the playlist. It reports false when
// the video already was a member.
func (s *Store) AddPlaylistVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	ids, err := utils.NormalizeIDs(playlistID, videoID)
	if err != nil {
		return false, err
	}
	db := s.db.WithContext(ctx)
	var last int64
	err = db.Model(&model.PlaylistVideo{}).
		Where("playlist_id = ?", ids[0]).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error
	if err != nil {
		return false, s.convert(ctx, err, model.KindPlaylist, "playlist position")
	}
	entry := &model.PlaylistVideo{PlaylistId: ids[0], VideoId: ids[1], Position: last + 1}
	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(entry)
	if res.Error != nil {
		return false, s.convert(ctx, res.Error, model.KindPlaylist, "add playlist video")
	}
	return res.RowsAffected > 0, nil
}

// RemovePlaylistVideo reports whether the video was a member.
func (s *Store) RemovePlaylistVideo(ctx context.Context, playlistID, videoID string) (bool, error) {
	ids, err := utils.NormalizeIDs(playlistID, videoID)
	if err != nil {
		return false, err
	}
	res := s.db.WithContext(ctx).
		Where("playlist_id = ? AND video_id = ?", ids[0], ids[1]).
		Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return false, s.convert(ctx, res.Error, model.KindPlaylist, "remove playlist video")
	}
	return res.RowsAffected > 0, nil
}

// DeletePlaylistEntries removes memberships matching cond, keyed by
// playlist_id or video_id.
func (s *Store) DeletePlaylistEntries(ctx context.Context, cond Cond) (int64, error) {
	if len(cond) == 0 {
		return 0, errno.ServiceErr.WithMessage("refusing to delete every playlist entry")
	}
	res := s.db.WithContext(ctx).Where(map[string]interface{}(cond)).Delete(&model.PlaylistVideo{})
	if res.Error != nil {
		return 0, s.convert(ctx, res.Error, model.KindPlaylist, "delete playlist entries")
	}
	return res.RowsAffected, nil
}

func checkKind(kind model.Kind) error {
	if !kind.Valid() {
		return errno.ServiceErr.WithMessage("unknown entity kind " + string(kind))
	}
	return nil
}

// convert maps driver errors onto errno classes. Unexpected failures are
// logged here and surface as ServiceErr.
func (s *Store) convert(ctx context.Context, err error, kind model.Kind, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return errno.NotFoundErr.WithMessage(string(kind) + " not found")
	case isDuplicate(err):
		return errno.ConflictErr.WithMessage(string(kind) + " already exists")
	default:
		hlog.CtxErrorf(ctx, "%s %s failed: %v", op, kind, err)
		return errors.Wrapf(errno.ServiceErr, "%s %s", op, kind)
	}
}

func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}

package oss

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"VidTube.com/pkg/errno"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
)

type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// Asset is a stored media object. ID is what Delete takes back.
type Asset struct {
	ID       string
	URL      string
	Duration float64
}

// MediaStore keeps uploaded media outside the database.
type MediaStore interface {
	Upload(ctx context.Context, localPath string, kind MediaKind) (*Asset, error)
	Delete(ctx context.Context, id string, kind MediaKind) (bool, error)
}

// Backend is one object storage flavour.
type Backend interface {
	Put(ctx context.Context, bucket, key, localPath, contentType string) (string, error)
	Remove(ctx context.Context, bucket, key string) error
}

// Prober reads the duration of a local video file in seconds.
type Prober func(path string) (float64, error)

type Store struct {
	backend     Backend
	imageBucket string
	videoBucket string
	probe       Prober
}

var _ MediaStore = (*Store)(nil)

func NewStore(backend Backend, imageBucket, videoBucket string, probe Prober) *Store {
	return &Store{backend: backend, imageBucket: imageBucket, videoBucket: videoBucket, probe: probe}
}

func (s *Store) bucket(kind MediaKind) (string, error) {
	switch kind {
	case KindImage:
		return s.imageBucket, nil
	case KindVideo:
		return s.videoBucket, nil
	}
	return "", errno.ParamErr.WithMessage("unknown media kind " + string(kind))
}

// Upload stores the staged file at localPath. The staged file is removed
// afterwards whether the upload succeeded or not.
func (s *Store) Upload(ctx context.Context, localPath string, kind MediaKind) (*Asset, error) {
	if localPath == "" {
		return nil, errno.ParamErr.WithMessage(string(kind) + " file is required")
	}
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove staged file %s: %v", localPath, err)
		}
	}()

	bucket, err := s.bucket(kind)
	if err != nil {
		return nil, err
	}
	if _, err = os.Stat(localPath); err != nil {
		return nil, errors.Wrap(err, "stat staged file")
	}

	asset := &Asset{}
	if kind == KindVideo && s.probe != nil {
		if asset.Duration, err = s.probe(localPath); err != nil {
			return nil, errors.WithMessage(err, "probe video duration")
		}
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	key := string(kind) + "/" + utils.NewID() + ext
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if asset.URL, err = s.backend.Put(ctx, bucket, key, localPath, contentType); err != nil {
		return nil, errors.WithMessagef(err, "upload %s", kind)
	}
	asset.ID = key
	hlog.CtxInfof(ctx, "uploaded %s %s", kind, key)
	return asset, nil
}

// Delete removes the object; an empty id is a no-op.
func (s *Store) Delete(ctx context.Context, id string, kind MediaKind) (bool, error) {
	if id == "" {
		return false, nil
	}
	bucket, err := s.bucket(kind)
	if err != nil {
		return false, err
	}
	if err = s.backend.Remove(ctx, bucket, id); err != nil {
		return false, errors.WithMessagef(err, "delete %s %s", kind, id)
	}
	return true, nil
}

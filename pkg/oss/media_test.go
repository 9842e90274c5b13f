package oss

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"VidTube.com/pkg/errno"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stage(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func newLocalStore(t *testing.T, probe Prober) (*Store, *LocalBackend) {
	t.Helper()
	b := &LocalBackend{BasePath: t.TempDir(), PublicBase: "http://cdn.local/"}
	return NewStore(b, "picture", "video", probe), b
}

func TestUploadVideo(t *testing.T) {
	ctx := context.Background()
	s, b := newLocalStore(t, func(string) (float64, error) { return 42.5, nil })
	staged := stage(t, "clip.MP4", "frames")

	asset, err := s.Upload(ctx, staged, KindVideo)
	require.NoError(t, err)
	assert.Equal(t, 42.5, asset.Duration)
	assert.True(t, strings.HasPrefix(asset.ID, "video/"))
	assert.True(t, strings.HasSuffix(asset.ID, ".mp4"))
	assert.Equal(t, "http://cdn.local/video/"+asset.ID, asset.URL)

	stored, err := os.ReadFile(b.path("video", asset.ID))
	require.NoError(t, err)
	assert.Equal(t, "frames", string(stored))

	_, err = os.Stat(staged)
	assert.True(t, os.IsNotExist(err), "staged file is cleaned up")

	ok, err := s.Delete(ctx, asset.ID, KindVideo)
	require.NoError(t, err)
	assert.True(t, ok)
	_, err = os.Stat(b.path("video", asset.ID))
	assert.True(t, os.IsNotExist(err))
}

func TestUploadImageSkipsProbe(t *testing.T) {
	probed := false
	s, _ := newLocalStore(t, func(string) (float64, error) { probed = true; return 1, nil })
	asset, err := s.Upload(context.Background(), stage(t, "thumb.jpg", "img"), KindImage)
	require.NoError(t, err)
	assert.False(t, probed)
	assert.Zero(t, asset.Duration)
}

func TestUploadFailures(t *testing.T) {
	ctx := context.Background()

	s, _ := newLocalStore(t, nil)
	_, err := s.Upload(ctx, "", KindVideo)
	assert.True(t, errno.IsValidation(err))

	_, err = s.Upload(ctx, filepath.Join(t.TempDir(), "missing.mp4"), KindVideo)
	assert.Error(t, err)

	broken, _ := newLocalStore(t, func(string) (float64, error) { return 0, errors.New("not a video") })
	staged := stage(t, "bad.mp4", "x")
	_, err = broken.Upload(ctx, staged, KindVideo)
	assert.Error(t, err)
	_, statErr := os.Stat(staged)
	assert.True(t, os.IsNotExist(statErr), "staged file is removed on failure too")
}

func TestDeleteEmptyID(t *testing.T) {
	s, _ := newLocalStore(t, nil)
	ok, err := s.Delete(context.Background(), "", KindImage)
	assert.NoError(t, err)
	assert.False(t, ok)
}

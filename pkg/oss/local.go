package oss

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// LocalBackend keeps objects under BasePath/<bucket>/<key>.
type LocalBackend struct {
	BasePath   string
	PublicBase string
}

func (l *LocalBackend) path(bucket, key string) string {
	return filepath.Join(l.BasePath, bucket, filepath.FromSlash(key))
}

func (l *LocalBackend) Put(_ context.Context, bucket, key, localPath, _ string) (string, error) {
	fullPath := l.path(bucket, key)
	if err := os.MkdirAll(filepath.Dir(fullPath), os.ModePerm); err != nil {
		return "", errors.Wrap(err, "create media folder")
	}
	in, err := os.Open(localPath)
	if err != nil {
		return "", errors.Wrap(err, "open staged file")
	}
	defer in.Close()

	out, err := os.Create(fullPath)
	if err != nil {
		return "", errors.Wrap(err, "create media file")
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return "", errors.Wrap(err, "write media file")
	}
	if l.PublicBase == "" {
		return fullPath, nil
	}
	return strings.TrimRight(l.PublicBase, "/") + "/" + bucket + "/" + key, nil
}

func (l *LocalBackend) Remove(_ context.Context, bucket, key string) error {
	err := os.Remove(l.path(bucket, key))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "remove media file")
	}
	return nil
}

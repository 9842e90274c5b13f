package oss

import (
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

type MinioBackend struct {
	client     *minio.Client
	location   string
	publicBase string
}

func NewMinioBackend(client *minio.Client, location, publicBase string) *MinioBackend {
	if location == "" {
		location = "us-east-1"
	}
	return &MinioBackend{client: client, location: location, publicBase: strings.TrimRight(publicBase, "/")}
}

func (m *MinioBackend) ensureBucket(ctx context.Context, bucketName string) error {
	exists, err := m.client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Wrap(err, "check bucket error")
	}
	if !exists {
		err = m.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: m.location})
		if err != nil {
			return errors.Wrap(err, "create bucket error")
		}
	}
	return nil
}

func (m *MinioBackend) Put(ctx context.Context, bucket, key, localPath, contentType string) (string, error) {
	if err := m.ensureBucket(ctx, bucket); err != nil {
		return "", err
	}
	_, err := m.client.FPutObject(ctx, bucket, key, localPath, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", errors.Wrap(err, "minio put object")
	}
	return fmt.Sprintf("%s/%s/%s", m.publicBase, bucket, key), nil
}

func (m *MinioBackend) Remove(ctx context.Context, bucket, key string) error {
	if err := m.client.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrap(err, "minio remove object")
	}
	return nil
}

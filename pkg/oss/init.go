package oss

import (
	"context"
	"os"

	"VidTube.com/config"
	"VidTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

// InitMinio builds the minio client from config, with MINIO_* environment
// variables taking precedence.
func InitMinio() (*minio.Client, error) {
	c := config.ConfigInfo.Minio
	endpoint := getEnvOrDefault("MINIO_ENDPOINT", c.Endpoint)
	accessKeyID := getEnvOrDefault("MINIO_ACCESS_KEY", c.AccessKey)
	secretAccessKey := getEnvOrDefault("MINIO_SECRET_KEY", c.SecretKey)
	useSSL := c.UseSSL || os.Getenv("MINIO_USE_SSL") == "true"

	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", endpoint, accessKeyID)

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		hlog.Errorf("Failed to create MinIO client: %v", err)
		return nil, err
	}

	hlog.Info("Connect Minio Success")
	return client, nil
}

// NewFromConfig picks the backend named by media.backend.
func NewFromConfig(ctx context.Context) (*Store, error) {
	m := config.ConfigInfo.Media
	var backend Backend
	switch m.Backend {
	case "", "minio":
		client, err := InitMinio()
		if err != nil {
			return nil, err
		}
		base := m.PublicBase
		if base == "" {
			base = "http://" + config.ConfigInfo.Minio.Endpoint
		}
		backend = NewMinioBackend(client, config.ConfigInfo.Minio.Region, base)
	case "s3":
		b, err := NewS3Backend(ctx, config.ConfigInfo.S3.Region, config.ConfigInfo.S3.Endpoint, config.ConfigInfo.S3.UsePathStyle)
		if err != nil {
			return nil, err
		}
		backend = b
	case "local":
		backend = &LocalBackend{BasePath: m.LocalDir, PublicBase: m.PublicBase}
	default:
		return nil, errors.Errorf("unknown media backend %q", m.Backend)
	}
	hlog.Infof("media backend %s ready", m.Backend)
	return NewStore(backend, m.ImageBucket, m.VideoBucket, utils.ProbeDuration), nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

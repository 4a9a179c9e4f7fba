package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sofiakaramia/Data-Storm/internal/pkg/logger"
)

type MinioReportStorage struct {
	client *minio.Client
	bucket string
	logger logger.Logger
}

func NewMinioReportStorage(endpoint, accessKey, secretKey, bucket string, useSSL bool) (*MinioReportStorage, error) {
	log := logger.New("info", "development").WithField("component", "minio_storage")

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		log.Infof("Created bucket: %s", bucket)
	}

	return &MinioReportStorage{
		client: client,
		bucket: bucket,
		logger: log,
	}, nil
}

func (s *MinioReportStorage) UploadReport(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	reader := bytes.NewReader(data)

	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report %s: %w", objectName, err)
	}

	s.logger.Infof("Uploaded report %s (%d bytes)", objectName, info.Size)
	return fmt.Sprintf("%s/%s", s.bucket, objectName), nil
}

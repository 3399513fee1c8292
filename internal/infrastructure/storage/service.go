package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"

	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
)

// StorageService はMinIOを使ったdomain/service.StorageServiceの実装です。
// すべての呼び出しはBreakerを通ります。
type StorageService struct {
	client     *minio.Client
	bucketName string
	breaker    *Breaker
}

// NewStorageService は新しいStorageServiceを作成します。breakerがnilなら保護しません
func NewStorageService(client *MinIOClient, breaker *Breaker) *StorageService {
	return &StorageService{
		client:     client.Client(),
		bucketName: client.BucketName(),
		breaker:    breaker,
	}
}

// GeneratePutURL はアップロード用Presigned URLを生成します
func (s *StorageService) GeneratePutURL(ctx context.Context, objectKey string, expiry time.Duration) (*service.PresignedURL, error) {
	var result *service.PresignedURL
	err := s.breaker.Do(func() error {
		u, err := s.client.PresignedPutObject(ctx, s.bucketName, objectKey, expiry)
		if err != nil {
			return fmt.Errorf("failed to generate presigned put URL: %w", err)
		}
		result = &service.PresignedURL{URL: u.String(), ExpiresAt: time.Now().Add(expiry)}
		return nil
	})
	return result, err
}

// GenerateGetURL はダウンロード用Presigned URLを生成します
func (s *StorageService) GenerateGetURL(ctx context.Context, objectKey string, expiry time.Duration) (*service.PresignedURL, error) {
	var result *service.PresignedURL
	err := s.breaker.Do(func() error {
		u, err := s.client.PresignedGetObject(ctx, s.bucketName, objectKey, expiry, nil)
		if err != nil {
			return fmt.Errorf("failed to generate presigned get URL: %w", err)
		}
		result = &service.PresignedURL{URL: u.String(), ExpiresAt: time.Now().Add(expiry)}
		return nil
	})
	return result, err
}

// ObjectExists はオブジェクトが存在するか確認します
func (s *StorageService) ObjectExists(ctx context.Context, objectKey string) (bool, error) {
	var exists bool
	err := s.breaker.Do(func() error {
		_, err := s.client.StatObject(ctx, s.bucketName, objectKey, minio.StatObjectOptions{})
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return fmt.Errorf("failed to check object existence: %w", err)
		}
		exists = true
		return nil
	})
	return exists, err
}

// DeleteObject はオブジェクトを削除します。存在しないキーの削除は成功として扱います
func (s *StorageService) DeleteObject(ctx context.Context, objectKey string) error {
	return s.breaker.Do(func() error {
		err := s.client.RemoveObject(ctx, s.bucketName, objectKey, minio.RemoveObjectOptions{})
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to delete object: %w", err)
		}
		return nil
	})
}

func isNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound":
		return true
	}
	return false
}

var _ service.StorageService = (*StorageService)(nil)

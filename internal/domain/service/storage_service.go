package service

import (
	"context"
	"io"
	"time"
)

// PresignedURL はPresigned URL情報を表します
type PresignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// StorageService はオブジェクトストレージ操作のドメインサービスインターフェースです。
// 各呼び出しは独立して失敗し得る単発のネットワーク操作として扱います。
type StorageService interface {
	// アップロード用URL生成
	GeneratePutURL(ctx context.Context, objectKey string, expiry time.Duration) (*PresignedURL, error)

	// ダウンロード用URL生成
	GenerateGetURL(ctx context.Context, objectKey string, expiry time.Duration) (*PresignedURL, error)

	// オブジェクトの存在確認
	ObjectExists(ctx context.Context, objectKey string) (bool, error)

	// オブジェクト削除
	DeleteObject(ctx context.Context, objectKey string) error
}

// ObjectFetcher は署名付きURLからオブジェクトの内容を取得します
type ObjectFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/Hiro-mackay/linkdrop/internal/domain/service"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// HTTPObjectFetcher は署名付きGET URLからオブジェクト本体を取得します。
// 接続エラーと5xxは指数バックオフで再試行します。
type HTTPObjectFetcher struct {
	client *retryablehttp.Client
}

// NewHTTPObjectFetcher は新しいHTTPObjectFetcherを作成します
func NewHTTPObjectFetcher(retries int) *HTTPObjectFetcher {
	client := retryablehttp.NewClient()
	client.RetryMax = max(retries, 0)
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 3 * time.Second
	client.Logger = retryLogger{}
	return &HTTPObjectFetcher{client: client}
}

// Fetch はURLの内容を返します。呼び出し側がCloseします
func (f *HTTPObjectFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build fetch request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch object: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch object: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// retryLogger は再試行ログをアプリケーションのロガーへ流します
type retryLogger struct{}

func (retryLogger) Error(msg string, keysAndValues ...any) {
	logger.Error(context.Background(), msg, keysAndValues...)
}

func (retryLogger) Info(msg string, keysAndValues ...any) {
	logger.Debug(context.Background(), msg, keysAndValues...)
}

func (retryLogger) Debug(msg string, keysAndValues ...any) {
	logger.Debug(context.Background(), msg, keysAndValues...)
}

func (retryLogger) Warn(msg string, keysAndValues ...any) {
	logger.Warn(context.Background(), msg, keysAndValues...)
}

var _ service.ObjectFetcher = (*HTTPObjectFetcher)(nil)

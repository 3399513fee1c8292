package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// checkTimeout は依存先1件あたりの確認時間の上限です
const checkTimeout = 3 * time.Second

// HealthChecker はヘルスチェックを実行するインターフェースです
type HealthChecker interface {
	Health(ctx context.Context) error
}

// HealthCheckFunc は関数をHealthCheckerとして扱います
type HealthCheckFunc func(ctx context.Context) error

// Health はfを呼び出します
func (f HealthCheckFunc) Health(ctx context.Context) error { return f(ctx) }

// HealthHandler はヘルスチェック関連のHTTPハンドラーです
type HealthHandler struct {
	checkers map[string]HealthChecker
	optional map[string]bool
}

// NewHealthHandler は新しいHealthHandlerを作成します
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: make(map[string]HealthChecker),
		optional: make(map[string]bool),
	}
}

// RegisterChecker は必須の依存先を登録します
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterOptionalChecker は落ちても準備完了とみなす依存先を登録します。
// キャッシュのように無くても縮退動作できるものに使います。
func (h *HealthHandler) RegisterOptionalChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
	h.optional[name] = true
}

// Checkers は登録済みのチェック関数を返します。定期ヘルスチェックジョブと共有します
func (h *HealthHandler) Checkers() map[string]func(ctx context.Context) error {
	out := make(map[string]func(ctx context.Context) error, len(h.checkers))
	for name, checker := range h.checkers {
		out[name] = checker.Health
	}
	return out
}

// HealthResponse はヘルスチェックレスポンスを定義します
type HealthResponse struct {
	Status string `json:"status"`
}

// ReadyResponse はレディネスチェックレスポンスを定義します
type ReadyResponse struct {
	Status   string                   `json:"status"`
	Services map[string]ServiceStatus `json:"services,omitempty"`
}

// ServiceStatus はサービスのステータスを定義します
type ServiceStatus struct {
	Status   string `json:"status"`
	Optional bool   `json:"optional,omitempty"`
	Message  string `json:"message,omitempty"`
}

// Check はライブネスチェックを実行します
// GET /health
func (h *HealthHandler) Check(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
	})
}

// Ready はレディネスチェックを実行します
// GET /ready
func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), checkTimeout)
	defer cancel()

	services := make(map[string]ServiceStatus)
	allHealthy := true

	var mu sync.Mutex
	var wg sync.WaitGroup

	for name, checker := range h.checkers {
		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()

			err := checker.Health(ctx)
			mu.Lock()
			defer mu.Unlock()

			optional := h.optional[name]
			if err != nil {
				services[name] = ServiceStatus{
					Status:   "unhealthy",
					Optional: optional,
					Message:  err.Error(),
				}
				if !optional {
					allHealthy = false
				}
				return
			}
			services[name] = ServiceStatus{Status: "healthy", Optional: optional}
		}(name, checker)
	}

	wg.Wait()

	status := "ready"
	statusCode := http.StatusOK
	if !allHealthy {
		status = "not_ready"
		statusCode = http.StatusServiceUnavailable
	}

	return c.JSON(statusCode, ReadyResponse{
		Status:   status,
		Services: services,
	})
}

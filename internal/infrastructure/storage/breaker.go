package storage

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"

	"github.com/Hiro-mackay/linkdrop/pkg/config"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
	"github.com/Hiro-mackay/linkdrop/pkg/metrics"
)

// ErrUnavailable はブレーカーが開いておりストレージ呼び出しを行わなかったことを表します
var ErrUnavailable = errors.New("object storage temporarily unavailable")

// Breaker はストレージ呼び出しをサーキットブレーカーで保護します。
// 無効時は呼び出しをそのまま実行します。
type Breaker struct {
	cb *gobreaker.CircuitBreaker
}

// NewBreaker は設定からBreakerを作成します
func NewBreaker(name string, cfg config.BreakerConfig) *Breaker {
	if !cfg.Enabled {
		return &Breaker{}
	}

	failures := cfg.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	metrics.BreakerState.WithLabelValues(name).Set(stateValue(gobreaker.StateClosed))

	return &Breaker{
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: cfg.MaxRequests,
			Interval:    cfg.Interval,
			Timeout:     cfg.Timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			// 呼び出し元の取り消しはストレージ障害として数えません
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				metrics.BreakerState.WithLabelValues(name).Set(stateValue(to))
				logger.Warn(context.Background(), "storage circuit breaker state changed",
					"breaker", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		}),
	}
}

// Do はfnをブレーカー越しに実行します
func (b *Breaker) Do(fn func() error) error {
	if b == nil || b.cb == nil {
		return fn()
	}
	_, err := b.cb.Execute(func() (any, error) {
		return nil, fn()
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrUnavailable
	}
	return err
}

// State は現在の状態名を返します
func (b *Breaker) State() string {
	if b == nil || b.cb == nil {
		return "disabled"
	}
	return b.cb.State().String()
}

func stateValue(s gobreaker.State) float64 {
	return float64(s)
}

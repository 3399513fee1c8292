package worker

import (
	"context"
	"time"

	"github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// OrphanReconciler は孤立レコード回収を実行します
type OrphanReconciler interface {
	Execute(ctx context.Context, input command.ReconcileOrphansInput) (*command.ReconcileOrphansOutput, error)
}

// NewOrphanReconcileJob は孤立レコード回収ジョブを作成します
func NewOrphanReconcileJob(reconciler OrphanReconciler, interval time.Duration, batchSize int) Job {
	if interval <= 0 {
		interval = 10 * time.Minute
	}

	return Job{
		Name:     "orphan_reconcile",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			output, err := reconciler.Execute(ctx, command.ReconcileOrphansInput{Limit: batchSize})
			if err != nil {
				return err
			}
			if output.Examined > 0 {
				logger.Info(ctx, "orphan reconcile completed",
					"examined", output.Examined,
					"resolved", output.Resolved,
					"failed", output.Failed,
				)
			}
			return nil
		},
	}
}

// NewHealthCheckJob は依存先の疎通確認ジョブを作成します
func NewHealthCheckJob(checks map[string]func(ctx context.Context) error) Job {
	return Job{
		Name:     "health_check",
		Interval: 5 * time.Minute,
		Fn: func(ctx context.Context) error {
			for name, check := range checks {
				if err := check(ctx); err != nil {
					logger.Warn(ctx, "health check failed", "dependency", name, "error", err.Error())
				}
			}
			return nil
		},
	}
}

package di

import (
	"context"
	"fmt"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/worker"
)

// NewWorkerManager はバックグラウンドジョブを登録したManagerを作成します
func NewWorkerManager(c *Container, checks map[string]func(ctx context.Context) error) (*worker.Manager, error) {
	mgr, err := worker.NewManager()
	if err != nil {
		return nil, err
	}

	if len(checks) > 0 {
		if err := mgr.Register(worker.NewHealthCheckJob(checks)); err != nil {
			return nil, fmt.Errorf("failed to register health check job: %w", err)
		}
	}

	rc := c.config.OrphanReconcile
	if rc.Enabled {
		job := worker.NewOrphanReconcileJob(c.Storage.ReconcileOrphans, rc.Interval, rc.BatchSize)
		if err := mgr.Register(job); err != nil {
			return nil, fmt.Errorf("failed to register orphan reconcile job: %w", err)
		}
	}

	return mgr, nil
}

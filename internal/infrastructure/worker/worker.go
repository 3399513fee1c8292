package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/Hiro-mackay/linkdrop/pkg/logger"
)

// Job は定期実行ジョブを定義します
type Job struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

// Manager はバックグラウンドジョブのスケジューラを管理します。
// 同じジョブは重ならず、前回が終わっていなければその回は見送ります。
type Manager struct {
	scheduler gocron.Scheduler
	ctx       context.Context
	cancel    context.CancelFunc
	jobs      int
}

// NewManager は新しいWorker Managerを作成します
func NewManager() (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		scheduler: s,
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// Register は定期実行ジョブを登録します。初回は開始直後に実行されます
func (m *Manager) Register(job Job) error {
	if job.Interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", job.Name)
	}

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(job.Interval),
		gocron.NewTask(func() { m.run(job) }),
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.Name, err)
	}
	m.jobs++
	return nil
}

// Start は全ジョブの実行を開始します
func (m *Manager) Start() {
	m.scheduler.Start()
	logger.Info(m.ctx, "worker manager started", "jobs", m.jobs)
}

func (m *Manager) run(job Job) {
	if m.ctx.Err() != nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error(m.ctx, "worker job panicked", "job", job.Name, "panic", fmt.Sprint(r))
		}
	}()

	start := time.Now()
	if err := job.Fn(m.ctx); err != nil {
		logger.Error(m.ctx, "worker job failed", "job", job.Name, "error", err.Error())
		return
	}
	logger.Debug(m.ctx, "worker job finished", "job", job.Name, "duration", time.Since(start).String())
}

// Shutdown は実行中のジョブを取り消し、停止を待ちます
func (m *Manager) Shutdown(timeout time.Duration) {
	logger.Info(m.ctx, "shutting down worker manager...")
	m.cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.scheduler.Shutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Warn(context.Background(), "worker manager shutdown error", "error", err.Error())
			return
		}
		logger.Info(context.Background(), "worker manager stopped gracefully")
	case <-time.After(timeout):
		logger.Warn(context.Background(), "worker manager shutdown timed out")
	}
}

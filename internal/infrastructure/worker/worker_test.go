package worker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hiro-mackay/linkdrop/internal/infrastructure/worker"
	"github.com/Hiro-mackay/linkdrop/internal/usecase/storage/command"
)

func TestManager_Register_RunsImmediatelyAfterStart(t *testing.T) {
	m, err := worker.NewManager()
	require.NoError(t, err)

	ran := make(chan struct{}, 1)
	require.NoError(t, m.Register(worker.Job{
		Name:     "probe",
		Interval: time.Hour,
		Fn: func(ctx context.Context) error {
			select {
			case ran <- struct{}{}:
			default:
			}
			return nil
		},
	}))

	m.Start()
	defer m.Shutdown(time.Second)

	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestManager_Register_NonPositiveInterval_ReturnsError(t *testing.T) {
	m, err := worker.NewManager()
	require.NoError(t, err)
	defer m.Shutdown(time.Second)

	err = m.Register(worker.Job{Name: "bad", Fn: func(context.Context) error { return nil }})
	assert.Error(t, err)
}

type stubReconciler struct {
	input  command.ReconcileOrphansInput
	output *command.ReconcileOrphansOutput
	err    error
}

func (s *stubReconciler) Execute(_ context.Context, input command.ReconcileOrphansInput) (*command.ReconcileOrphansOutput, error) {
	s.input = input
	return s.output, s.err
}

func TestNewOrphanReconcileJob_PassesBatchSize(t *testing.T) {
	stub := &stubReconciler{output: &command.ReconcileOrphansOutput{Examined: 3, Resolved: 3}}

	job := worker.NewOrphanReconcileJob(stub, time.Minute, 50)

	require.NoError(t, job.Fn(context.Background()))
	assert.Equal(t, 50, stub.input.Limit)
	assert.Equal(t, "orphan_reconcile", job.Name)
	assert.Equal(t, time.Minute, job.Interval)
}

func TestNewOrphanReconcileJob_PropagatesError(t *testing.T) {
	stub := &stubReconciler{err: errors.New("db down")}

	job := worker.NewOrphanReconcileJob(stub, 0, 10)

	assert.Error(t, job.Fn(context.Background()))
	assert.Equal(t, 10*time.Minute, job.Interval)
}

func TestNewHealthCheckJob_FailingCheckDoesNotFailJob(t *testing.T) {
	called := 0
	job := worker.NewHealthCheckJob(map[string]func(context.Context) error{
		"postgres": func(context.Context) error { called++; return errors.New("down") },
		"redis":    func(context.Context) error { called++; return nil },
	})

	assert.NoError(t, job.Fn(context.Background()))
	assert.Equal(t, 2, called)
}

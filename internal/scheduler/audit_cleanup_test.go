package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu    sync.Mutex
	calls []int
}

func (f *fakeRunner) EnqueueAuditCleanup(_ context.Context, retentionDays int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, retentionDays)
	return nil
}

type fakeCleaner struct {
	retention time.Duration
	err       error
}

func (f *fakeCleaner) DeleteOldEvents(_ context.Context, retention time.Duration) (int64, error) {
	f.retention = retention
	return 0, f.err
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.NoError(t, ValidateCronSchedule("*/5 * * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"), "seconds field is not accepted")
}

func TestAuditCleanupScheduler_StartStop(t *testing.T) {
	runner := &fakeRunner{}
	s := NewAuditCleanupScheduler(runner, "0 3 * * *", 90)

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())
}

func TestAuditCleanupScheduler_StopsOnContextCancel(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeRunner{}, "0 3 * * *", 90)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestAuditCleanupScheduler_Disabled(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeRunner{}, "", 90)

	require.NoError(t, s.Start(context.Background()))
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewAuditCleanupScheduler(&fakeRunner{}, "not a schedule", 90)

	err := s.Start(context.Background())
	assert.ErrorContains(t, err, "invalid cron schedule")
	assert.False(t, s.IsRunning())
}

func TestAuditCleanupScheduler_RunNow(t *testing.T) {
	runner := &fakeRunner{}
	s := NewAuditCleanupScheduler(runner, "0 3 * * *", 30)

	require.NoError(t, s.RunNow(context.Background()))
	assert.Equal(t, []int{30}, runner.calls)
}

func TestDirectCleanup(t *testing.T) {
	cleaner := &fakeCleaner{}
	require.NoError(t, DirectCleanup{Cleaner: cleaner}.EnqueueAuditCleanup(context.Background(), 2))
	assert.Equal(t, 48*time.Hour, cleaner.retention)

	cleaner.err = errors.New("busy")
	assert.Error(t, DirectCleanup{Cleaner: cleaner}.EnqueueAuditCleanup(context.Background(), 2))
}

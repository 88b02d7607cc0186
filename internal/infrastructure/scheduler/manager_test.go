package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasknest/tasknest/internal/shared/logger"
)

func TestSchedulerManager_SessionPurgeJob(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	var runs atomic.Int32
	var purged atomic.Int32
	m.OnSessionsPurged(func(count int) { purged.Add(int32(count)) })

	job := BatchJobFunc(func(ctx context.Context) (int, error) {
		runs.Add(1)
		return 2, nil
	})
	require.NoError(t, m.RegisterSessionPurgeJob(job, time.Hour))

	jobs := m.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "session-purge", jobs[0].Name())
	assert.ElementsMatch(t, []string{"session", "purge"}, jobs[0].Tags())

	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool { return runs.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return purged.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
	require.NoError(t, m.Stop())
}

func TestSchedulerManager_RunOnceSkipsCallbackOnError(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewNop())
	require.NoError(t, err)

	called := false
	m.OnSessionsPurged(func(int) { called = true })

	m.RunOnce(context.Background(), BatchJobFunc(func(context.Context) (int, error) {
		return 0, errors.New("store unavailable")
	}))
	assert.False(t, called)

	m.RunOnce(context.Background(), BatchJobFunc(func(context.Context) (int, error) {
		return 0, nil
	}))
	assert.True(t, called)
}

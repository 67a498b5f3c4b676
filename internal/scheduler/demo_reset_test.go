package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSeeder struct {
	calls atomic.Int32
	err   error
}

func (s *countingSeeder) InsertInitialData(ctx context.Context) error {
	s.calls.Add(1)
	return s.err
}

type countingPruner struct {
	calls atomic.Int32
}

func (p *countingPruner) Prune() {
	p.calls.Add(1)
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 * * * *"))
	assert.NoError(t, ValidateSchedule("*/5 * * * *"))
	assert.Error(t, ValidateSchedule("not a schedule"))
	assert.Error(t, ValidateSchedule("0 0 * * * *"))
}

func TestDemoResetScheduler_StartStop(t *testing.T) {
	s := NewDemoResetScheduler(&countingSeeder{}, nil, "0 * * * *", nil)

	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	next := s.GetNextRunTime()
	require.NotNil(t, next)
	assert.True(t, next.After(time.Now()))
	assert.Zero(t, next.Minute())

	// Second start is a no-op.
	require.NoError(t, s.Start(context.Background()))

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Nil(t, s.GetNextRunTime())

	s.Stop()
}

func TestDemoResetScheduler_InvalidSchedule(t *testing.T) {
	s := NewDemoResetScheduler(&countingSeeder{}, nil, "every hour", nil)

	err := s.Start(context.Background())
	assert.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestDemoResetScheduler_StopsWhenContextCanceled(t *testing.T) {
	s := NewDemoResetScheduler(&countingSeeder{}, nil, "0 * * * *", nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	cancel()

	assert.Eventually(t, func() bool { return !s.IsRunning() }, time.Second, 10*time.Millisecond)
}

func TestDemoResetScheduler_RunNow(t *testing.T) {
	seeder := &countingSeeder{}
	pruner := &countingPruner{}
	s := NewDemoResetScheduler(seeder, pruner, "0 * * * *", nil)

	require.NoError(t, s.RunNow(context.Background()))

	assert.Equal(t, int32(1), seeder.calls.Load())
	assert.Equal(t, int32(1), pruner.calls.Load())
}

func TestDemoResetScheduler_RunNowSeedFailureSkipsPrune(t *testing.T) {
	seeder := &countingSeeder{err: errors.New("locked")}
	pruner := &countingPruner{}
	s := NewDemoResetScheduler(seeder, pruner, "0 * * * *", nil)

	err := s.RunNow(context.Background())

	assert.EqualError(t, err, "locked")
	assert.Equal(t, int32(1), seeder.calls.Load())
	assert.Zero(t, pruner.calls.Load())
}

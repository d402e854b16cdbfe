package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerLifecycle(t *testing.T) {
	s := NewScheduler(nil, nil)

	t.Run("start without jobs fails", func(t *testing.T) {
		assert.ErrorContains(t, s.Start(), "no jobs scheduled")
	})

	t.Run("invalid cron expression is rejected", func(t *testing.T) {
		err := s.ScheduleSeasonRefresh("not a cron", []string{"2023"}, nil, nil)
		assert.Error(t, err)
	})

	t.Run("start and stop", func(t *testing.T) {
		require.NoError(t, s.ScheduleSeasonRefresh("0 4 * * *", []string{"2023"}, nil, nil))
		require.NoError(t, s.Start())
		assert.True(t, s.IsRunning())
		assert.False(t, s.NextRun().IsZero())

		assert.ErrorContains(t, s.Start(), "already running")
		assert.ErrorContains(t, s.ScheduleSeasonRefresh("0 4 * * *", nil, nil, nil), "while scheduler is running")

		require.NoError(t, s.Stop())
		assert.False(t, s.IsRunning())
		assert.True(t, s.NextRun().IsZero())
	})

	t.Run("stop when not running is a no-op", func(t *testing.T) {
		assert.NoError(t, s.Stop())
	})
}

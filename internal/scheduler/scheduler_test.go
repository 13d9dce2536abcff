package scheduler

import (
	"testing"
	"time"

	"builderclub-backend/internal/config"
	"builderclub-backend/internal/jobs"

	"github.com/stretchr/testify/assert"
)

func TestNewScheduler(t *testing.T) {
	t.Run("Registers sync job", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{SyncEvents: "0 0 6 * * *"}}
		s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg), time.UTC)
		assert.True(t, s.IsRunning())
	})

	t.Run("Invalid expression skipped", func(t *testing.T) {
		cfg := &config.Config{Scheduler: config.SchedulerConfig{SyncEvents: "every morning"}}
		s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg), time.UTC)
		assert.False(t, s.IsRunning())
	})

	t.Run("Next run in club timezone", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("tzdata not available")
		}
		cfg := &config.Config{Scheduler: config.SchedulerConfig{SyncEvents: "0 0 6 * * *"}}
		s := NewScheduler(jobs.NewJobRunner(&jobs.Services{}, cfg), loc)
		s.Start()
		defer s.Stop()

		next := s.NextRun().In(loc)
		assert.Equal(t, 6, next.Hour())
		assert.Equal(t, 0, next.Minute())
	})
}

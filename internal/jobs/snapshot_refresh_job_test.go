package jobs_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"orderboard/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rehydraterStub struct {
	calls int
	err   error
}

func (s *rehydraterStub) Rehydrate(context.Context) error {
	s.calls++
	return s.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSnapshotRefreshJob_Run(t *testing.T) {
	t.Run("rehydrates_every_view", func(t *testing.T) {
		first := &rehydraterStub{}
		second := &rehydraterStub{}
		job := jobs.NewSnapshotRefreshJob(discardLogger(), first, second)

		job.Run()

		assert.Equal(t, 1, first.calls)
		assert.Equal(t, 1, second.calls)
	})

	t.Run("one_failing_view_does_not_block_the_others", func(t *testing.T) {
		failing := &rehydraterStub{err: assert.AnError}
		healthy := &rehydraterStub{}
		job := jobs.NewSnapshotRefreshJob(discardLogger(), failing, healthy)

		job.Run()

		assert.Equal(t, 1, healthy.calls)
	})
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(discardLogger(), &rehydraterStub{})

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}

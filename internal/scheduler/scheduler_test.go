package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ndewijer/Author-Ledger-Backend/internal/config"
)

type stubRefresher struct {
	calls atomic.Int32
	count int
	err   error
}

func (r *stubRefresher) Refresh(ctx context.Context) (int, error) {
	r.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("refresh called without deadline")
	}
	return r.count, r.err
}

func TestScheduler_StartDisabled(t *testing.T) {
	refresher := &stubRefresher{}
	s := NewScheduler(config.SnapshotConfig{Enabled: false, Schedule: "not a schedule"}, refresher, nil)

	require.NoError(t, s.Start())
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}

func TestScheduler_StartRegistersJob(t *testing.T) {
	s := NewScheduler(config.SnapshotConfig{Enabled: true, Schedule: "0 3 * * *"}, &stubRefresher{}, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Len(t, s.cron.Entries(), 1)
}

func TestScheduler_StartInvalidSchedule(t *testing.T) {
	s := NewScheduler(config.SnapshotConfig{Enabled: true, Schedule: "every day"}, &stubRefresher{}, nil)

	assert.Error(t, s.Start())
}

func TestScheduler_RefreshSnapshots(t *testing.T) {
	t.Run("logs refreshed count", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		refresher := &stubRefresher{count: 3}
		s := NewScheduler(config.SnapshotConfig{Enabled: true}, refresher, zap.New(core))

		s.RefreshSnapshots()

		assert.Equal(t, int32(1), refresher.calls.Load())
		entries := logs.FilterMessage("report snapshots refreshed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, int64(3), entries[0].ContextMap()["books"])
	})

	t.Run("logs failure", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		refresher := &stubRefresher{err: errors.New("database is locked")}
		s := NewScheduler(config.SnapshotConfig{Enabled: true}, refresher, zap.New(core))

		s.RefreshSnapshots()

		assert.Equal(t, 1, logs.FilterMessage("failed to refresh report snapshots").Len())
		assert.Equal(t, 0, logs.FilterMessage("report snapshots refreshed").Len())
	})
}

package dao

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/AnushaPriya2003/anusha/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDao(t *testing.T) *Dao {
	t.Helper()
	db, err := NewDBEngine(Config{
		Path:         filepath.Join(t.TempDir(), "db", "job.db"),
		MaxIdleConns: 1,
		MaxOpenConns: 1,
	})
	require.NoError(t, err)
	d := New(db, nil)
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestJobRunRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewJobRunRepository(newTestDao(t))

	last, err := repo.Last(ctx, "pim-csv")
	require.NoError(t, err)
	assert.Nil(t, last)

	base := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	for i, status := range []domain.RunStatus{domain.RunStatusSuccess, domain.RunStatusPartial, domain.RunStatusSuccess} {
		created, err := repo.Create(ctx, &domain.JobRun{
			Task:       "pim-csv",
			Trigger:    domain.TriggerSchedule,
			Status:     status,
			Purge:      domain.PurgeReport{Deleted: i, Retained: 2},
			StartedAt:  base.AddDate(0, 0, i),
			FinishedAt: base.AddDate(0, 0, i).Add(time.Minute),
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Len(t, created.RunID, 36)
	}
	_, err = repo.Create(ctx, &domain.JobRun{Task: "other", Status: domain.RunStatusFailed, StartedAt: base.AddDate(0, 0, 10)})
	require.NoError(t, err)

	list, err := repo.List(ctx, "pim-csv", 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Purge.Deleted)
	assert.Equal(t, domain.RunStatusPartial, list[1].Status)
	assert.Equal(t, time.Minute, list[0].Duration())

	all, err := repo.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 4)
	assert.Equal(t, "other", all[0].Task)

	last, err = repo.Last(ctx, "pim-csv")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.True(t, last.IsSuccess())
	assert.Equal(t, domain.TriggerSchedule, last.Trigger)

	n, err := repo.DeleteBefore(ctx, base.AddDate(0, 0, 2))
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	all, err = repo.List(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

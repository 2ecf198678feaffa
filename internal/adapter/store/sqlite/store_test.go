package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/postreview/svndiff/internal/adapter/store/sqlite"
	"github.com/postreview/svndiff/internal/store"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRun(id string, ts time.Time) store.Run {
	return store.Run{
		RunID:          id,
		Timestamp:      ts,
		RepositoryUUID: "uuid-1",
		BasePath:       "/trunk",
		RevisionSpec:   "4:7",
		Mode:           "working-copy",
		FileCount:      3,
		HunkCount:      9,
		DiffBytes:      1421,
	}
}

func TestSaveAndListRun(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.SaveRun(ctx, sampleRun("run-1", ts)))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, sampleRun("run-1", ts), runs[0])
}

func TestListRunsNewestFirstAndLimited(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := sampleRun("run-"+string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, s.SaveRun(ctx, run))
	}

	runs, err := s.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	require.Equal(t, "run-e", runs[0].RunID)
	require.Equal(t, "run-d", runs[1].RunID)
	require.Equal(t, "run-c", runs[2].RunID)
}

func TestDuplicateRunIDRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run := sampleRun("run-1", time.Now())
	require.NoError(t, s.SaveRun(ctx, run))
	require.Error(t, s.SaveRun(ctx, run))
}

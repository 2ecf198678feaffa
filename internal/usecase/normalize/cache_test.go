package normalize_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/usecase/normalize"
)

func TestCachedLookupMemoizesResults(t *testing.T) {
	calls := 0
	lookup := normalize.LookupFunc(func(ctx context.Context, path string) (domain.Metadata, error) {
		calls++
		return domain.Metadata{domain.MetaURL: repoRoot + "/" + path}, nil
	})
	cached := normalize.NewCachedLookup(lookup)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		meta, err := cached.Lookup(ctx, "file.py")
		require.NoError(t, err)
		require.Equal(t, repoRoot+"/file.py", meta[domain.MetaURL])
	}

	require.Equal(t, 1, calls)
}

func TestCachedLookupMemoizesMissesAndErrors(t *testing.T) {
	calls := 0
	boom := errors.New("boom")
	lookup := normalize.LookupFunc(func(ctx context.Context, path string) (domain.Metadata, error) {
		calls++
		if path == "broken" {
			return nil, boom
		}
		return nil, nil
	})
	cached := normalize.NewCachedLookup(lookup)

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		meta, err := cached.Lookup(ctx, "missing")
		require.NoError(t, err)
		require.Nil(t, meta)
	}
	for i := 0; i < 2; i++ {
		_, err := cached.Lookup(ctx, "broken")
		require.ErrorIs(t, err, boom)
	}

	require.Equal(t, 2, calls)
}

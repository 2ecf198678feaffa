package normalize_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/postreview/svndiff/internal/domain"
	"github.com/postreview/svndiff/internal/usecase/normalize"
)

func TestRewriteReplacesCopyOrigin(t *testing.T) {
	lookup := mapLookup(map[string]domain.Metadata{
		"file.py": {
			domain.MetaCopiedFromURL:  repoRoot + "/orig.py",
			domain.MetaRepositoryRoot: repoRoot,
		},
	})
	rw := normalize.NewRenameRewriter(normalize.NewResolver(lookup))

	in := []string{
		"--- file.py\t(revision 0)\n",
		"+++ file.py\t(revision 3)\n",
	}
	out := rw.Rewrite(context.Background(), in, false)

	require.Equal(t, []string{
		"--- /orig.py\t(revision 0)\n",
		"+++ file.py\t(revision 3)\n",
	}, out)
}

func TestRewriteLeavesUncopiedFilesAlone(t *testing.T) {
	rw := normalize.NewRenameRewriter(normalize.NewResolver(mapLookup(nil)))

	in := []string{
		"Index: file.py\n",
		"===================================================================\n",
		"--- file.py\t(revision 2)\n",
		"+++ file.py\t(working copy)\n",
		"@@ -1 +1,2 @@\n",
		" one\n",
		"+two\n",
	}
	out := rw.Rewrite(context.Background(), in, false)
	require.Equal(t, in, out)
}

func TestRewriteSkipModeReturnsInputUnchanged(t *testing.T) {
	lookup := mapLookup(map[string]domain.Metadata{
		"file.py": {
			domain.MetaCopiedFromURL:  repoRoot + "/orig.py",
			domain.MetaRepositoryRoot: repoRoot,
		},
	})
	rw := normalize.NewRenameRewriter(normalize.NewResolver(lookup))

	in := []string{
		"--- file.py\t(revision 0)\n",
		"+++ file.py\t(revision 3)\n",
	}
	out := rw.Rewrite(context.Background(), in, true)
	require.Equal(t, in, out)
}

func TestRewritePreservesLineCount(t *testing.T) {
	rw := normalize.NewRenameRewriter(normalize.NewResolver(mapLookup(nil)))

	in := []string{
		"Index: a.txt\n",
		"--- a.txt\t(revision 1)\n",
		"+++ a.txt\t(working copy)\n",
		"@@ -1 +1 @@\n",
		"-old\n",
		"+new\n",
		"Index: b.txt\n",
		"--- b.txt\t(revision 1)\n",
		"+++ b.txt\t(working copy)\n",
	}
	out := rw.Rewrite(context.Background(), in, false)
	require.Len(t, out, len(in))
}

func TestRewritePassthroughWithoutHeaders(t *testing.T) {
	rw := normalize.NewRenameRewriter(normalize.NewResolver(mapLookup(nil)))

	in := []string{"just\n", "plain\n", "text\n"}
	out := rw.Rewrite(context.Background(), in, false)
	require.Equal(t, in, out)
}

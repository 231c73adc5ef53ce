package ioutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jndunlap/csl/internal/rank"
)

func TestReadTableParallelMatchesSequential(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")
	content := "0,1,0\n1,0,1\n0,0,0\n1,1,1\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	opts := TableOptions{N: 3, M: 4, Separator: ','}
	wantNames, wantRows, err := ReadTable(path, opts)
	require.NoError(t, err)

	for _, n := range []int{1, 2, 3} {
		var gotNames []string
		var gotRows [][]byte
		err := rank.Run(context.Background(), n, func(ctx context.Context, c *rank.Communicator) error {
			names, rows, err := ReadTableParallel(c, path, opts)
			if c.Rank() == 0 {
				gotNames, gotRows = names, rows
			}
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, wantNames, gotNames)
		assert.Equal(t, wantRows, gotRows)
	}
}

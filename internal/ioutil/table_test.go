package ioutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadTableRowMajorNoHeaders(t *testing.T) {
	path := writeTemp(t, "0,1,0\n1,0,1\n0,0,0\n")
	names, rows, err := ReadTable(path, TableOptions{N: 3, M: 3, Separator: ','})
	require.NoError(t, err)
	assert.Equal(t, []string{"V0", "V1", "V2"}, names)
	assert.Equal(t, []byte{0, 1, 0}, rows[0])
	assert.Equal(t, []byte{1, 0, 0}, rows[1])
	assert.Equal(t, []byte{0, 1, 0}, rows[2])
}

func TestReadTableRowMajorWithHeaderAndIndex(t *testing.T) {
	content := "idx,A,B\n0,0,1\n1,1,0\n"
	path := writeTemp(t, content)
	names, rows, err := ReadTable(path, TableOptions{N: 2, M: 2, Separator: ',', VarNames: true, ObsIndices: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)
	assert.Equal(t, []byte{0, 1}, rows[0])
	assert.Equal(t, []byte{1, 0}, rows[1])
}

func TestReadTableColumnMajorWithNames(t *testing.T) {
	content := "A,0,1,0\nB,1,0,1\n"
	path := writeTemp(t, content)
	names, rows, err := ReadTable(path, TableOptions{N: 2, M: 3, Separator: ',', ColObs: true, VarNames: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)
	assert.Equal(t, []byte{0, 1, 0}, rows[0])
	assert.Equal(t, []byte{1, 0, 1}, rows[1])
}

func TestReadTableRejectsOutOfRangeCell(t *testing.T) {
	path := writeTemp(t, "0,999\n")
	_, _, err := ReadTable(path, TableOptions{N: 2, M: 1, Separator: ','})
	assert.Error(t, err)
}

func TestReadTableRejectsDimensionMismatch(t *testing.T) {
	path := writeTemp(t, "0,1,0\n1,0\n")
	_, _, err := ReadTable(path, TableOptions{N: 3, M: 2, Separator: ','})
	assert.Error(t, err)
}

func TestCheckObservationCountOverflow(t *testing.T) {
	assert.False(t, CheckObservationCountOverflow(1000))
	assert.True(t, CheckObservationCountOverflow(1<<20))
}

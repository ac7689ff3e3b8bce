package store

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/ldagibbs/matrix"
)

func TestFloat64RowsRoundTrip(t *testing.T) {
	rows := [][]float64{{0.25, 0.75, 0}, {1, 0, 0}}

	var buf bytes.Buffer
	require.NoError(t, WriteFloat64Rows(&buf, rows))
	assert.True(t, strings.HasPrefix(buf.String(), "2,3\n"))
	assert.Equal(t, 4, strings.Count(buf.String(), "\n"))

	got, err := ReadFloat64Rows(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for i := range rows {
		assert.InDeltaSlice(t, rows[i], got[i], 1e-6)
	}
}

func TestFloat64RowsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFloat64Rows(&buf, nil))
	assert.Equal(t, "0,0\n", buf.String())

	got, err := ReadFloat64Rows(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFloat64RowsRagged(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, WriteFloat64Rows(&buf, [][]float64{{1, 2}, {3}}))
}

func TestReadFloat64RowsCorrupted(t *testing.T) {
	_, err := ReadFloat64Rows(strings.NewReader("2;2\n"))
	assert.Error(t, err)

	_, err = ReadFloat64Rows(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadFloat64Rows(strings.NewReader("1,1\n0,3,1.0\n"))
	assert.ErrorIs(t, err, matrix.ErrIndexOutOfRange)

	rows, err := ReadFloat64Rows(strings.NewReader("1,2\nbogus\n0,1,5e-01\n"))
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0, 0.5}}, rows)
}

func TestWriteUint32Matrix(t *testing.T) {
	m := matrix.NewUint32Matrix(2, 3)
	m.Set(0, 1, 4)
	m.Set(1, 2, 1)

	var buf bytes.Buffer
	require.NoError(t, WriteUint32Matrix(&buf, m))
	assert.Equal(t, "2,3\n0,1,4\n1,2,1\n", buf.String())
}

func TestRowsFile(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "out.theta")
	require.NoError(t, WriteFloat64RowsFile(fn, [][]float64{{0.5, 0.5}}))

	got, err := ReadFloat64RowsFile(fn)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{0.5, 0.5}, got[0], 1e-9)

	require.NoError(t, WriteUint32MatrixFile(filepath.Join(t.TempDir(), "out.tw"), matrix.NewUint32Matrix(1, 1)))
}

func TestFloat64RowsLossless(t *testing.T) {
	rows := [][]float64{{1.0 / 3, 1.0 / 3, 1.0 / 3}, {0.1, 0.2, 0.7}, {1e-300, 0.123456789012345678, 1}}

	var buf bytes.Buffer
	require.NoError(t, WriteFloat64Rows(&buf, rows))
	got, err := ReadFloat64Rows(&buf)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
	assert.InDelta(t, 1.0, got[0][0]+got[0][1]+got[0][2], 1e-15)
}

package store

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/ldagibbs/corpus"
	"github.com/bobonovski/ldagibbs/model"
)

func trainedModel(t *testing.T) *model.LDA {
	t.Helper()
	dat := corpus.FromDocs([][]uint32{{7, 9, 7, 9}, {12, 30, 12}, {}})
	cfg := model.DefaultConfig()
	cfg.NumTopics = 2
	cfg.BurnIn, cfg.SampleLag = 4, 2
	m, err := model.NewLDA(dat, cfg)
	require.NoError(t, err)
	require.NoError(t, m.Train(10))
	return m
}

func TestCheckpointRoundTrip(t *testing.T) {
	m := trainedModel(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, NewCheckpoint(m)))
	c, err := Decode(&buf)
	require.NoError(t, err)

	assert.Equal(t, m.Config(), c.Config)
	assert.Equal(t, m.Corpus().Vocab, c.Vocab)

	restored, err := c.Model()
	require.NoError(t, err)
	assert.Equal(t, 10, restored.Sweeps())
	assert.Equal(t, 3, restored.Samples())
	assert.Equal(t, m.State().Z, restored.State().Z)
	assert.Equal(t, m.Theta(), restored.Theta())
	assert.Equal(t, m.Phi(), restored.Phi())
	assert.NoError(t, restored.State().Check(restored.Corpus().Docs))

	dense, ok := restored.Corpus().Index(30)
	assert.True(t, ok)
	assert.Equal(t, uint32(3), dense)
}

func TestCheckpointFile(t *testing.T) {
	m := trainedModel(t)
	fn := filepath.Join(t.TempDir(), "run.ckpt")

	require.NoError(t, SaveCheckpoint(fn, m))
	require.NoError(t, m.Train(2))
	require.NoError(t, SaveCheckpoint(fn, m))

	c, err := LoadCheckpoint(fn)
	require.NoError(t, err)
	assert.Equal(t, 12, c.Snapshot.Sweeps)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(fn), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestCheckpointVersion(t *testing.T) {
	c := NewCheckpoint(trainedModel(t))
	c.Version = 99

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, c))
	_, err := Decode(&buf)
	assert.True(t, errors.Is(err, ErrCheckpointVersion))
}

func TestLoadCheckpointMissing(t *testing.T) {
	_, err := LoadCheckpoint(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/ldagibbs/corpus"
)

func assertRowsSumToOne(t *testing.T, rows [][]float64) {
	t.Helper()
	for i, row := range rows {
		assert.InDelta(t, 1.0, floats.Sum(row), 1e-9, "row %d", i)
	}
}

func TestEstimatesNormalized(t *testing.T) {
	dat := corpus.FromDocs([][]uint32{{0, 1, 2, 3, 4, 0}, {4, 4, 3, 1}, {2, 0, 2}, {}})
	cfg := testConfig(3, 9)
	cfg.BurnIn, cfg.SampleLag = 10, 3
	m, err := NewLDA(dat, cfg)
	require.NoError(t, err)

	require.NoError(t, m.Init())
	assertRowsSumToOne(t, m.Theta())
	assertRowsSumToOne(t, m.Phi())

	require.NoError(t, m.Train(40))
	assert.Equal(t, 10, m.Samples())
	theta, phi := m.Theta(), m.Phi()
	assert.Len(t, theta, 4)
	assert.Len(t, phi, 3)
	assertRowsSumToOne(t, theta)
	assertRowsSumToOne(t, phi)
	for _, row := range phi {
		assert.Len(t, row, 5)
	}
}

func TestThetaWithoutSamplesUsesCounts(t *testing.T) {
	dat := twoDocs()
	cfg := testConfig(2, 4)
	cfg.BurnIn = 100
	m, err := NewLDA(dat, cfg)
	require.NoError(t, err)
	require.NoError(t, m.Train(10))

	assert.Equal(t, 0, m.Samples())
	st := m.State()
	theta := m.Theta()
	for d := range dat.Docs {
		for k := uint32(0); k < 2; k += 1 {
			want := (float64(st.DocTopic.Get(uint32(d), k)) + 0.1) /
				(float64(st.DocTotal.Get(uint32(d), 0)) + 0.2)
			assert.InDelta(t, want, theta[d][k], 1e-12)
		}
	}
}

func TestEstimatesDoNotMutate(t *testing.T) {
	m, err := NewLDA(twoDocs(), testConfig(2, 2))
	require.NoError(t, err)
	require.NoError(t, m.Train(5))

	before := m.Snapshot()
	m.Theta()
	m.Phi()
	m.TopWords(2)
	m.LogLikelihood()
	assert.Equal(t, before, m.Snapshot())
}

func TestTopWords(t *testing.T) {
	dat := corpus.FromDocs([][]uint32{{10, 10, 10, 20}, {30, 40}})
	cfg := testConfig(1, 1)
	m, err := NewLDA(dat, cfg)
	require.NoError(t, err)
	require.NoError(t, m.Init())

	tops := m.TopWords(3)
	require.Len(t, tops, 1)
	require.Len(t, tops[0], 3)
	assert.Equal(t, uint32(10), tops[0][0].Original)
	assert.Equal(t, uint32(0), tops[0][0].Id)
	// 20, 30 and 40 all occur once, the lowest id wins the tie
	assert.Equal(t, uint32(20), tops[0][1].Original)
	assert.Equal(t, uint32(30), tops[0][2].Original)
	assert.InDelta(t, (3+0.1)/(6+0.4), tops[0][0].Prob, 1e-12)

	assert.Len(t, m.TopWords(10)[0], 4)
	assert.Empty(t, m.TopWords(0)[0])
	assert.Empty(t, m.TopWords(-2)[0])
}

func TestLogLikelihood(t *testing.T) {
	m, err := NewLDA(twoDocs(), testConfig(2, 1))
	require.NoError(t, err)
	require.NoError(t, m.Init())

	ll := m.LogLikelihood()
	assert.False(t, math.IsNaN(ll))
	assert.Less(t, ll, 0.0)
}

func TestInfer(t *testing.T) {
	var m *LDA
	for seed := int64(1); seed <= 10; seed += 1 {
		candidate, err := NewLDA(twoDocs(), testConfig(2, seed))
		require.NoError(t, err)
		require.NoError(t, candidate.Train(200))
		theta := candidate.Theta()
		if argmax(theta[0]) != argmax(theta[1]) {
			m = candidate
			break
		}
	}
	require.NotNil(t, m, "no seed separated the two documents")

	before := m.Snapshot()
	inferred, err := m.Infer([][]uint32{{0, 1, 1, 0, 0}, {3, 2, 2}, {}}, 50)
	require.NoError(t, err)
	assert.Equal(t, before, m.Snapshot())

	require.Len(t, inferred, 3)
	assertRowsSumToOne(t, inferred)
	theta := m.Theta()
	assert.Equal(t, argmax(theta[0]), argmax(inferred[0]))
	assert.Equal(t, argmax(theta[1]), argmax(inferred[1]))
	assert.InDelta(t, 0.5, inferred[2][0], 1e-12)

	_, err = m.Infer([][]uint32{{4}}, 5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSnapshotRestore(t *testing.T) {
	dat := corpus.FromDocs([][]uint32{{0, 1, 2, 3, 4, 0}, {4, 4, 3, 1}, {2, 0, 2}})
	cfg := testConfig(3, 8)
	cfg.BurnIn, cfg.SampleLag = 5, 2
	m, err := NewLDA(dat, cfg)
	require.NoError(t, err)
	require.NoError(t, m.Train(15))

	snap := m.Snapshot()
	restored, err := Restore(dat, cfg, snap)
	require.NoError(t, err)

	assert.NoError(t, restored.State().Check(dat.Docs))
	assert.Equal(t, m.State().Z, restored.State().Z)
	assert.Equal(t, 15, restored.Sweeps())
	assert.Equal(t, 5, restored.Samples())
	assert.Equal(t, m.Theta(), restored.Theta())
	assert.Equal(t, m.Phi(), restored.Phi())

	require.NoError(t, restored.Train(4))
	assert.Equal(t, 19, restored.Sweeps())
	assert.Equal(t, 7, restored.Samples())
	assert.NoError(t, restored.State().Check(dat.Docs))

	snap.Z[0][0] = 9
	_, err = Restore(dat, cfg, snap)
	assert.ErrorIs(t, err, ErrState)
}

func TestRestoreBeforeInit(t *testing.T) {
	dat := twoDocs()
	cfg := testConfig(2, 3)
	m, err := NewLDA(dat, cfg)
	require.NoError(t, err)

	snap := m.Snapshot()
	assert.False(t, snap.Initialized)
	restored, err := Restore(dat, cfg, snap)
	require.NoError(t, err)
	assert.False(t, restored.State().Initialized())
	assert.ErrorIs(t, restored.Sweep(), ErrState)

	// the restored chain starts exactly like a fresh one
	require.NoError(t, restored.Init())
	require.NoError(t, m.Init())
	assert.Equal(t, m.State().Z, restored.State().Z)

	snap.Sweeps = 3
	_, err = Restore(dat, cfg, snap)
	assert.ErrorIs(t, err, ErrState)
}

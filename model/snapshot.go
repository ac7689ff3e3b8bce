package model

import (
	"math/rand"

	"github.com/pkg/errors"

	"github.com/bobonovski/ldagibbs/corpus"
)

// Snapshot is everything needed to continue a run besides the corpus and
// the configuration. The count tables are not part of it since they are
// rebuilt from Z.
type Snapshot struct {
	// false until the chain received its random start, Z is meaningless then
	Initialized bool
	Sweeps      int
	Samples  int
	Z        [][]uint32
	ThetaSum [][]float64
	PhiSum   [][]float64
}

// Snapshot copies the sampler state between two sweeps.
func (this *LDA) Snapshot() Snapshot {
	return Snapshot{
		Initialized: this.state.initialized,
		Sweeps:      this.sweeps,
		Samples:     this.samples,
		Z:           copyUint32Rows(this.state.Z),
		ThetaSum:    copyFloat64Rows(this.thetaSum),
		PhiSum:      copyFloat64Rows(this.phiSum),
	}
}

// Restore recreates a sampler from a snapshot taken on the same corpus.
// A snapshot taken before Init gives a sampler that still needs Init. The
// random source is reseeded with Seed+Sweeps, so a resumed run is
// reproducible but does not replay the draws of an uninterrupted one.
func Restore(dat *corpus.Corpus, cfg Config, snap Snapshot) (*LDA, error) {
	m, err := NewLDA(dat, cfg)
	if err != nil {
		return nil, err
	}
	if snap.Sweeps < 0 || snap.Samples < 0 {
		return nil, errors.Wrapf(ErrState, "negative progress in snapshot: %d sweeps, %d samples", snap.Sweeps, snap.Samples)
	}
	if !snap.Initialized {
		if snap.Sweeps > 0 || snap.Samples > 0 {
			return nil, errors.Wrapf(ErrState, "uninitialized snapshot reports %d sweeps, %d samples", snap.Sweeps, snap.Samples)
		}
		return m, nil
	}
	if snap.Samples > 0 {
		if err := checkRows(snap.ThetaSum, len(dat.Docs), cfg.NumTopics, "theta"); err != nil {
			return nil, err
		}
		if err := checkRows(snap.PhiSum, cfg.NumTopics, int(dat.VocabSize), "phi"); err != nil {
			return nil, err
		}
	}
	if err := m.state.assign(dat.Docs, snap.Z); err != nil {
		return nil, err
	}

	m.rng = rand.New(rand.NewSource(cfg.Seed + int64(snap.Sweeps)))
	m.sweeps = snap.Sweeps
	if snap.Samples > 0 {
		m.samples = snap.Samples
		m.thetaSum = copyFloat64Rows(snap.ThetaSum)
		m.phiSum = copyFloat64Rows(snap.PhiSum)
	}
	return m, nil
}

func checkRows(rows [][]float64, n, width int, name string) error {
	if len(rows) != n {
		return errors.Wrapf(ErrState, "%s sums have %d rows, want %d", name, len(rows), n)
	}
	for i, row := range rows {
		if len(row) != width {
			return errors.Wrapf(ErrState, "%s sums row %d has %d entries, want %d", name, i, len(row), width)
		}
	}
	return nil
}

func copyUint32Rows(rows [][]uint32) [][]uint32 {
	if rows == nil {
		return nil
	}
	out := make([][]uint32, len(rows))
	for i, row := range rows {
		out[i] = append([]uint32{}, row...)
	}
	return out
}

func copyFloat64Rows(rows [][]float64) [][]float64 {
	if rows == nil {
		return nil
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		out[i] = append([]float64{}, row...)
	}
	return out
}

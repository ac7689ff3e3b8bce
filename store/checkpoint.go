package store

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bobonovski/ldagibbs/corpus"
	"github.com/bobonovski/ldagibbs/model"
)

const checkpointVersion = 1

var ErrCheckpointVersion = errors.New("store: unsupported checkpoint version")

// Checkpoint is a self-contained record of a sampling run taken between
// two sweeps: the dense corpus, its vocabulary, the configuration and the
// sampler snapshot. Count tables are rebuilt from the assignments on load.
type Checkpoint struct {
	Version  int            `msgpack:"version"`
	Config   model.Config   `msgpack:"config"`
	Vocab    []uint32       `msgpack:"vocab"`
	Docs     [][]uint32     `msgpack:"docs"`
	Snapshot model.Snapshot `msgpack:"snapshot"`
}

func NewCheckpoint(m *model.LDA) *Checkpoint {
	dat := m.Corpus()
	return &Checkpoint{
		Version:  checkpointVersion,
		Config:   m.Config(),
		Vocab:    dat.Vocab,
		Docs:     dat.Docs,
		Snapshot: m.Snapshot(),
	}
}

// Corpus rebuilds the training corpus stored in the checkpoint.
func (c *Checkpoint) Corpus() *corpus.Corpus {
	return corpus.FromDense(c.Docs, c.Vocab)
}

// Model restores the sampler, ready for more sweeps or for estimation.
func (c *Checkpoint) Model() (*model.LDA, error) {
	return model.Restore(c.Corpus(), c.Config, c.Snapshot)
}

func Encode(w io.Writer, c *Checkpoint) error {
	return errors.Wrap(msgpack.NewEncoder(w).Encode(c), "encode checkpoint")
}

func Decode(r io.Reader) (*Checkpoint, error) {
	c := &Checkpoint{}
	if err := msgpack.NewDecoder(r).Decode(c); err != nil {
		return nil, errors.Wrap(err, "decode checkpoint")
	}
	if c.Version != checkpointVersion {
		return nil, errors.Wrapf(ErrCheckpointVersion, "got version %d", c.Version)
	}
	return c, nil
}

// SaveCheckpoint writes the current state of m to fn. The file is written
// next to its destination and renamed into place so an interrupted save
// never leaves a truncated checkpoint behind.
func SaveCheckpoint(fn string, m *model.LDA) error {
	tmp, err := os.CreateTemp(filepath.Dir(fn), filepath.Base(fn)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "create checkpoint")
	}
	defer os.Remove(tmp.Name())

	if err := Encode(tmp, NewCheckpoint(m)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "close checkpoint")
	}
	return errors.Wrap(os.Rename(tmp.Name(), fn), "rename checkpoint")
}

func LoadCheckpoint(fn string) (*Checkpoint, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "open checkpoint %s", fn)
	}
	defer f.Close()
	return Decode(f)
}

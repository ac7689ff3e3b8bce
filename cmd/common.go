package cmd

import (
	"context"
	"io"
	"os"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"

	"github.com/bobonovski/ldagibbs/config"
	"github.com/bobonovski/ldagibbs/corpus"
	"github.com/bobonovski/ldagibbs/model"
	"github.com/bobonovski/ldagibbs/report"
	"github.com/bobonovski/ldagibbs/store"
)

// sweepHooks reports progress, writes periodic checkpoints and stops the
// run once ctx is cancelled. Stopping happens between two sweeps so the
// state is always valid.
func sweepHooks(ctx context.Context, m *model.LDA, iter int, checkpoint string, every int) []model.SweepHook {
	bar := progressbar.NewOptions(iter,
		progressbar.OptionSetDescription("sampling"),
		progressbar.OptionSetWriter(os.Stderr))
	start := m.Sweeps()

	hooks := []model.SweepHook{
		func(sweep int) error {
			bar.Add(1)
			if sweep-start == iter {
				bar.Finish()
			}
			return nil
		},
	}
	if checkpoint != "" && every > 0 {
		hooks = append(hooks, func(sweep int) error {
			if sweep%every != 0 {
				return nil
			}
			log.V(1).Infof("checkpoint at sweep %d", sweep)
			return store.SaveCheckpoint(checkpoint, m)
		})
	}
	hooks = append(hooks, func(sweep int) error {
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "stopped after sweep %d", sweep)
		default:
			return nil
		}
	})
	return hooks
}

// train runs the sampler and writes estimates even when the run is
// interrupted, the interruption is still returned.
func train(ctx context.Context, m *model.LDA, iter int, dict corpus.Dictionary, out, checkpoint string, every int) error {
	runErr := m.Train(iter, sweepHooks(ctx, m, iter, checkpoint, every)...)
	if runErr != nil && errors.Cause(runErr) != context.Canceled {
		return runErr
	}
	if runErr != nil {
		log.Warningf("%v, writing estimates of the current state", runErr)
	}

	if checkpoint != "" {
		if err := store.SaveCheckpoint(checkpoint, m); err != nil {
			return err
		}
	}
	if err := writeOutputs(out, m, dict); err != nil {
		return err
	}
	return runErr
}

// writeOutputs writes PREFIX.theta, PREFIX.phi, PREFIX.tw, PREFIX.toml,
// PREFIX.topics.json and PREFIX.report.txt
func writeOutputs(prefix string, m *model.LDA, dict corpus.Dictionary) error {
	if prefix == "" {
		return nil
	}
	cfg := m.Config()
	theta := m.Theta()

	if err := store.WriteFloat64RowsFile(prefix+".theta", theta); err != nil {
		return err
	}
	if err := store.WriteFloat64RowsFile(prefix+".phi", m.Phi()); err != nil {
		return err
	}
	if err := store.WriteUint32MatrixFile(prefix+".tw", m.State().TopicWord); err != nil {
		return err
	}
	if err := config.Save(prefix+".toml", &cfg); err != nil {
		return err
	}

	topics := report.TopicWords(m, dict, cfg.WordsPerTopic)
	if err := store.WriteFile(prefix+".topics.json", func(w io.Writer) error {
		return report.WriteTopicsJSON(w, topics)
	}); err != nil {
		return err
	}
	if err := store.WriteFile(prefix+".report.txt", func(w io.Writer) error {
		if err := report.WriteTheta(w, theta); err != nil {
			return err
		}
		return report.WriteTopics(w, topics)
	}); err != nil {
		return err
	}

	log.Infof("wrote estimates of %d sweeps (%d samples) to %s.*", m.Sweeps(), m.Samples(), prefix)
	return nil
}

func loadDictionary(fn string) (corpus.Dictionary, error) {
	if fn == "" {
		return corpus.Dictionary{}, nil
	}
	return corpus.LoadDictionaryFile(fn)
}

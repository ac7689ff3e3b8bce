package model

import "github.com/pkg/errors"

// Config bundles the hyperparameters and the sampling schedule.
type Config struct {
	NumTopics     int     `toml:"num_topics"`
	Alpha         float64 `toml:"alpha"`          // document topic mixture hyperparameter
	Beta          float64 `toml:"beta"`           // topic word mixture hyperparameter
	Iterations    int     `toml:"iterations"`     // number of gibbs sweeps
	BurnIn        int     `toml:"burn_in"`        // sweeps discarded before averaging
	SampleLag     int     `toml:"sample_lag"`     // sweeps between two averaged samples
	WordsPerTopic int     `toml:"words_per_topic"`
	Seed          int64   `toml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		NumTopics:     20,
		Alpha:         0.1,
		Beta:          0.01,
		Iterations:    1000,
		BurnIn:        50,
		SampleLag:     20,
		WordsPerTopic: 10,
		Seed:          1,
	}
}

// Validate rejects configurations the sampler cannot run with.
func (c Config) Validate() error {
	switch {
	case c.NumTopics < 1:
		return errors.Wrapf(ErrConfiguration, "num_topics must be positive, got %d", c.NumTopics)
	case !(c.Alpha > 0):
		return errors.Wrapf(ErrConfiguration, "alpha must be positive, got %v", c.Alpha)
	case !(c.Beta > 0):
		return errors.Wrapf(ErrConfiguration, "beta must be positive, got %v", c.Beta)
	case c.Iterations < 0:
		return errors.Wrapf(ErrConfiguration, "iterations must not be negative, got %d", c.Iterations)
	case c.BurnIn < 0:
		return errors.Wrapf(ErrConfiguration, "burn_in must not be negative, got %d", c.BurnIn)
	case c.SampleLag < 1:
		return errors.Wrapf(ErrConfiguration, "sample_lag must be at least 1, got %d", c.SampleLag)
	case c.WordsPerTopic < 0:
		return errors.Wrapf(ErrConfiguration, "words_per_topic must not be negative, got %d", c.WordsPerTopic)
	}
	return nil
}

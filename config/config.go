package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/bobonovski/ldagibbs/model"
)

// Load builds a sampler configuration. Defaults come first, then the
// LDA_* environment variables, then the TOML file at path when path is
// not empty. The result is validated.
func Load(path string) (*model.Config, error) {
	cfg := model.DefaultConfig()

	if err := fromEnv(&cfg); err != nil {
		return nil, err
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return nil, errors.Wrapf(model.ErrConfiguration, "decode %s: %v", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Wrapf(model.ErrConfiguration, "unknown keys in %s: %v", path, undecoded)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func fromEnv(cfg *model.Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{"LDA_TOPICS", &cfg.NumTopics},
		{"LDA_ITERATIONS", &cfg.Iterations},
		{"LDA_BURN_IN", &cfg.BurnIn},
		{"LDA_SAMPLE_LAG", &cfg.SampleLag},
		{"LDA_WORDS_PER_TOPIC", &cfg.WordsPerTopic},
	}
	for _, v := range ints {
		if s := os.Getenv(v.name); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return errors.Wrapf(model.ErrConfiguration, "%s=%q is not an integer", v.name, s)
			}
			*v.dst = n
		}
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{"LDA_ALPHA", &cfg.Alpha},
		{"LDA_BETA", &cfg.Beta},
	}
	for _, v := range floats {
		if s := os.Getenv(v.name); s != "" {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return errors.Wrapf(model.ErrConfiguration, "%s=%q is not a number", v.name, s)
			}
			*v.dst = f
		}
	}

	if s := os.Getenv("LDA_SEED"); s != "" {
		seed, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return errors.Wrapf(model.ErrConfiguration, "LDA_SEED=%q is not an integer", s)
		}
		cfg.Seed = seed
	}
	return nil
}

// Save writes cfg as TOML, the format Load reads back.
func Save(path string, cfg *model.Config) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to encode config")
	}
	return nil
}

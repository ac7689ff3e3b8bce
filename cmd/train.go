package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bobonovski/ldagibbs/config"
	"github.com/bobonovski/ldagibbs/corpus"
	"github.com/bobonovski/ldagibbs/model"
)

type trainOptions struct {
	corpusFile string
	dictFile   string
	configFile string
	modelType  string
	out        string
	checkpoint string
	every      int

	topics     int
	alpha      float64
	beta       float64
	iterations int
	burnIn     int
	lag        int
	words      int
	seed       int64
}

func TrainCmd() *cobra.Command {
	opts := &trainOptions{}
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit topics to an integer encoded corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrain(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.corpusFile, "corpus", "", "integer encoded corpus, one document per line")
	flags.StringVar(&opts.dictFile, "dict", "", "reverse dictionary as a JSON object of id to word")
	flags.StringVar(&opts.configFile, "config", "", "TOML configuration file")
	flags.StringVar(&opts.modelType, "model", "lda", "model type")
	flags.StringVar(&opts.out, "out", "", "prefix of the output files")
	flags.StringVar(&opts.checkpoint, "checkpoint", "", "checkpoint file written at the end of the run")
	flags.IntVar(&opts.every, "checkpoint-every", 0, "also write the checkpoint every n sweeps")

	flags.IntVar(&opts.topics, "topics", 0, "number of topics")
	flags.Float64Var(&opts.alpha, "alpha", 0, "document-topic mixture hyperparameter")
	flags.Float64Var(&opts.beta, "beta", 0, "topic-word mixture hyperparameter")
	flags.IntVar(&opts.iterations, "iter", 0, "number of sweeps")
	flags.IntVar(&opts.burnIn, "burn-in", 0, "sweeps before estimates are averaged")
	flags.IntVar(&opts.lag, "lag", 0, "sweeps between averaged samples")
	flags.IntVar(&opts.words, "words", 0, "words reported per topic")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed")

	cmd.MarkFlagRequired("corpus")
	cmd.MarkFlagRequired("out")
	return cmd
}

// loadConfig reads the configuration file and applies the flags that were
// set explicitly on the command line.
func (opts *trainOptions) loadConfig(cmd *cobra.Command) (*model.Config, error) {
	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("topics") {
		cfg.NumTopics = opts.topics
	}
	if flags.Changed("alpha") {
		cfg.Alpha = opts.alpha
	}
	if flags.Changed("beta") {
		cfg.Beta = opts.beta
	}
	if flags.Changed("iter") {
		cfg.Iterations = opts.iterations
	}
	if flags.Changed("burn-in") {
		cfg.BurnIn = opts.burnIn
	}
	if flags.Changed("lag") {
		cfg.SampleLag = opts.lag
	}
	if flags.Changed("words") {
		cfg.WordsPerTopic = opts.words
	}
	if flags.Changed("seed") {
		cfg.Seed = opts.seed
	}
	return cfg, cfg.Validate()
}

func runTrain(cmd *cobra.Command, opts *trainOptions) error {
	cfg, err := opts.loadConfig(cmd)
	if err != nil {
		return err
	}
	dat, err := corpus.LoadFile(opts.corpusFile)
	if err != nil {
		return err
	}
	dict, err := loadDictionary(opts.dictFile)
	if err != nil {
		return err
	}

	ctor, err := model.GetModel(opts.modelType)
	if err != nil {
		return err
	}
	m, err := ctor(dat, *cfg)
	if err != nil {
		return err
	}
	lda, ok := m.(*model.LDA)
	if !ok {
		return errors.Errorf("model %s does not support checkpoints", opts.modelType)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return train(ctx, lda, cfg.Iterations, dict, opts.out, opts.checkpoint, opts.every)
}

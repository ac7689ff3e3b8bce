package model

import (
	"math/rand"
	"sort"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/ldagibbs/corpus"
)

func init() {
	Register("lda", func(dat *corpus.Corpus, cfg Config) (Model, error) {
		m, err := NewLDA(dat, cfg)
		if err != nil {
			return nil, err
		}
		return m, nil
	})
}

// SweepHook is called after every completed sweep with the total number
// of sweeps run so far. A non-nil error stops training, the count state
// is left consistent.
type SweepHook func(sweep int) error

type LDA struct {
	data     *corpus.Corpus
	config   Config
	alpha    Prior // document topic mixture hyperparameter, indexed by topic
	beta     Prior // topic word mixture hyperparameter, indexed by word
	alphaSum float64
	betaSum  float64
	topicNum uint32
	rng      *rand.Rand

	state *State

	// averaged estimates collected after burn-in every sample lag sweeps
	thetaSum [][]float64
	phiSum   [][]float64
	samples  int
	sweeps   int

	score  []float64
	cumsum []float64
}

// NewLDA creates a LDA instance with collapsed gibbs sampler and
// symmetric priors taken from cfg.
func NewLDA(dat *corpus.Corpus, cfg Config) (*LDA, error) {
	return NewLDAWithPriors(dat, cfg, Symmetric(cfg.Alpha), Symmetric(cfg.Beta))
}

// NewLDAWithPriors is NewLDA with explicit priors, alpha has one entry per
// topic and beta one entry per vocabulary word when given as vectors.
func NewLDAWithPriors(dat *corpus.Corpus, cfg Config, alpha, beta Prior) (*LDA, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	topicNum := uint32(cfg.NumTopics)
	if err := alpha.validate("alpha", topicNum); err != nil {
		return nil, err
	}
	if err := beta.validate("beta", dat.VocabSize); err != nil {
		return nil, err
	}

	return &LDA{
		data:     dat,
		config:   cfg,
		alpha:    alpha,
		beta:     beta,
		alphaSum: alpha.Sum(topicNum),
		betaSum:  beta.Sum(dat.VocabSize),
		topicNum: topicNum,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		state:    NewState(dat.Docs, topicNum, dat.VocabSize),
		score:    make([]float64, topicNum),
		cumsum:   make([]float64, topicNum),
	}, nil
}

func (this *LDA) Config() Config {
	return this.config
}

func (this *LDA) Corpus() *corpus.Corpus {
	return this.data
}

func (this *LDA) State() *State {
	return this.state
}

// Sweeps is the number of completed sweeps over the corpus.
func (this *LDA) Sweeps() int {
	return this.sweeps
}

// Samples is the number of sweeps averaged into Theta and Phi.
func (this *LDA) Samples() int {
	return this.samples
}

// Init starts the markov chain by assigning a uniformly random topic to
// every word. It fails if the state is already initialized.
func (this *LDA) Init() error {
	if this.state.initialized {
		return errors.Wrap(ErrState, "init called twice")
	}

	z := make([][]uint32, len(this.data.Docs))
	for doc, words := range this.data.Docs {
		z[doc] = make([]uint32, len(words))
		for i := range words {
			z[doc][i] = uint32(this.rng.Intn(int(this.topicNum)))
		}
	}
	return this.state.assign(this.data.Docs, z)
}

// Sweep resamples the topic of every word once, document by document.
func (this *LDA) Sweep() error {
	if !this.state.initialized {
		return errors.Wrap(ErrState, "sweep before init")
	}

	vocabSize := this.data.VocabSize
	for d, words := range this.data.Docs {
		doc := uint32(d)
		for i, w := range words {
			if w >= vocabSize {
				return errors.Wrapf(ErrIndexOutOfRange,
					"document %d position %d: word %d outside vocabulary of %d", d, i, w, vocabSize)
			}

			// take the word out of the counts so the conditional excludes it
			this.state.retract(doc, uint32(i), w)

			k := this.sampleTopic(doc, w)

			this.state.commit(doc, uint32(i), w, k)
		}
	}
	this.sweeps += 1
	return nil
}

// sampleTopic draws a topic for word w of document doc from the collapsed
// conditional, the word itself must already be retracted.
func (this *LDA) sampleTopic(doc, w uint32) uint32 {
	st := this.state
	docPartDenom := float64(st.DocTotal.Get(doc, uint32(0))) + this.alphaSum
	for k := uint32(0); k < this.topicNum; k += 1 {
		docPart := (float64(st.DocTopic.Get(doc, k)) + this.alpha.At(k)) / docPartDenom
		wordPart := (float64(st.TopicWord.Get(k, w)) + this.beta.At(w)) /
			(float64(st.TopicTotal.Get(k, uint32(0))) + this.betaSum)
		this.score[k] = docPart * wordPart
	}
	return draw(this.rng, this.score, this.cumsum)
}

// draw picks index k with probability proportional to score[k] using the
// unnormalized cumulative sum, cumsum is scratch space of the same length
func draw(rng *rand.Rand, score, cumsum []float64) uint32 {
	floats.CumSum(cumsum, score)
	n := len(cumsum)
	u := rng.Float64() * cumsum[n-1]
	k := sort.Search(n, func(i int) bool {
		return cumsum[i] > u
	})
	if k == n {
		k -= 1
	}
	return uint32(k)
}

// Train runs iter sweeps, initializing the chain first when needed.
func (this *LDA) Train(iter int, hooks ...SweepHook) error {
	if !this.state.initialized {
		if err := this.Init(); err != nil {
			return err
		}
	}

	for iterIdx := 0; iterIdx < iter; iterIdx += 1 {
		if iterIdx%10 == 0 {
			log.Infof("iter %5d, likelihood %f", this.sweeps, this.LogLikelihood())
		}

		if err := this.Sweep(); err != nil {
			return err
		}
		this.collect()

		for _, hook := range hooks {
			if err := hook(this.sweeps); err != nil {
				return err
			}
		}
	}
	return nil
}

// collect adds the current estimates to the running averages once the
// chain is past burn-in, every sample lag sweeps.
func (this *LDA) collect() {
	since := this.sweeps - this.config.BurnIn
	if since <= 0 || since%this.config.SampleLag != 0 {
		return
	}

	theta, phi := this.currentTheta(), this.currentPhi()
	if this.samples == 0 {
		this.thetaSum, this.phiSum = theta, phi
	} else {
		for d := range theta {
			floats.Add(this.thetaSum[d], theta[d])
		}
		for k := range phi {
			floats.Add(this.phiSum[k], phi[k])
		}
	}
	this.samples += 1
	log.V(1).Infof("sweep %d collected as sample %d", this.sweeps, this.samples)
}

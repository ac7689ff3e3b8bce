package model

import (
	"math/rand"

	"github.com/pkg/errors"
)

// Infer folds new documents, given as dense word ids of the training
// vocabulary, into the trained model and returns their document-topic
// distributions. The trained topic-word counts are held fixed and only
// the new documents' assignments are sampled, the model is not mutated.
func (this *LDA) Infer(docs [][]uint32, iter int) ([][]float64, error) {
	if !this.state.initialized {
		return nil, errors.Wrap(ErrState, "infer before training")
	}
	if iter < 0 {
		return nil, errors.Wrapf(ErrConfiguration, "iterations must not be negative, got %d", iter)
	}
	vocabSize := this.data.VocabSize
	for d, words := range docs {
		for i, w := range words {
			if w >= vocabSize {
				return nil, errors.Wrapf(ErrIndexOutOfRange,
					"document %d position %d: word %d outside vocabulary of %d", d, i, w, vocabSize)
			}
		}
	}

	st := this.state
	rng := rand.New(rand.NewSource(this.config.Seed))
	score := make([]float64, this.topicNum)
	cumsum := make([]float64, this.topicNum)

	theta := make([][]float64, len(docs))
	for d, words := range docs {
		docTopic := make([]float64, this.topicNum)
		z := make([]uint32, len(words))
		for i := range words {
			z[i] = uint32(rng.Intn(int(this.topicNum)))
			docTopic[z[i]] += 1
		}

		for iterIdx := 0; iterIdx < iter; iterIdx += 1 {
			for i, w := range words {
				docTopic[z[i]] -= 1
				docPartDenom := float64(len(words)-1) + this.alphaSum
				for k := uint32(0); k < this.topicNum; k += 1 {
					docPart := (docTopic[k] + this.alpha.At(k)) / docPartDenom
					wordPart := (float64(st.TopicWord.Get(k, w)) + this.beta.At(w)) /
						(float64(st.TopicTotal.Get(k, uint32(0))) + this.betaSum)
					score[k] = docPart * wordPart
				}
				z[i] = draw(rng, score, cumsum)
				docTopic[z[i]] += 1
			}
		}

		row := make([]float64, this.topicNum)
		denom := float64(len(words)) + this.alphaSum
		for k := uint32(0); k < this.topicNum; k += 1 {
			row[k] = (docTopic[k] + this.alpha.At(k)) / denom
		}
		theta[d] = row
	}
	return theta, nil
}

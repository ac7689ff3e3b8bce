package model

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// WordProb is one entry of a topic's word ranking.
type WordProb struct {
	Id       uint32 // dense word id
	Original uint32 // word id as it appeared in the input
	Prob     float64
}

// compute the posterior point estimation of document-topic mixture from
// the current counts, alpha (Dirichlet prior) + data -> theta
func (this *LDA) currentTheta() [][]float64 {
	st := this.state
	theta := make([][]float64, len(this.data.Docs))
	for d := range theta {
		doc := uint32(d)
		denom := float64(st.DocTotal.Get(doc, uint32(0))) + this.alphaSum
		row := make([]float64, this.topicNum)
		for k := uint32(0); k < this.topicNum; k += 1 {
			row[k] = (float64(st.DocTopic.Get(doc, k)) + this.alpha.At(k)) / denom
		}
		theta[d] = row
	}
	return theta
}

// compute the posterior point estimation of topic-word mixture from the
// current counts, beta (Dirichlet prior) + data -> phi
func (this *LDA) currentPhi() [][]float64 {
	st := this.state
	vocabSize := this.data.VocabSize
	phi := make([][]float64, this.topicNum)
	for k := uint32(0); k < this.topicNum; k += 1 {
		denom := float64(st.TopicTotal.Get(k, uint32(0))) + this.betaSum
		row := make([]float64, vocabSize)
		for w := uint32(0); w < vocabSize; w += 1 {
			row[w] = (float64(st.TopicWord.Get(k, w)) + this.beta.At(w)) / denom
		}
		phi[k] = row
	}
	return phi
}

// Theta is the document-topic distribution, one row per document. It is
// the average over collected samples, or the estimate from the current
// counts when no sample has been collected yet.
func (this *LDA) Theta() [][]float64 {
	if this.samples == 0 {
		return this.currentTheta()
	}
	return average(this.thetaSum, this.samples)
}

// Phi is the topic-word distribution, one row per topic, see Theta.
func (this *LDA) Phi() [][]float64 {
	if this.samples == 0 {
		return this.currentPhi()
	}
	return average(this.phiSum, this.samples)
}

func average(sums [][]float64, n int) [][]float64 {
	rows := make([][]float64, len(sums))
	for i, sum := range sums {
		rows[i] = make([]float64, len(sum))
		floats.ScaleTo(rows[i], 1/float64(n), sum)
	}
	return rows
}

// TopWords ranks the words of every topic by probability and keeps the
// first n. Ties are broken by the lower word id.
func (this *LDA) TopWords(n int) [][]WordProb {
	phi := this.Phi()
	if n < 0 {
		n = 0
	}
	if n > int(this.data.VocabSize) {
		n = int(this.data.VocabSize)
	}

	tops := make([][]WordProb, len(phi))
	for k, row := range phi {
		ids := make([]int, len(row))
		for w := range ids {
			ids[w] = w
		}
		sort.Slice(ids, func(i, j int) bool {
			if row[ids[i]] != row[ids[j]] {
				return row[ids[i]] > row[ids[j]]
			}
			return ids[i] < ids[j]
		})

		words := make([]WordProb, n)
		for i, w := range ids[:n] {
			words[i] = WordProb{
				Id:       uint32(w),
				Original: this.data.Vocab[w],
				Prob:     row[w],
			}
		}
		tops[k] = words
	}
	return tops
}

// compute the joint likelihood of corpus under the current counts
func (this *LDA) LogLikelihood() float64 {
	phi := this.currentPhi()
	theta := this.currentTheta()

	sum := float64(0.0)
	for doc, words := range this.data.Docs {
		for _, w := range words {
			if w >= this.data.VocabSize {
				continue
			}
			topicSum := float64(0.0)
			for k := range phi {
				topicSum += phi[k][w] * theta[doc][k]
			}
			sum += math.Log(topicSum)
		}
	}
	return sum
}

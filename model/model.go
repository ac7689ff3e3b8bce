package model

import (
	"fmt"

	"github.com/bobonovski/ldagibbs/corpus"
)

var constructors = make(map[string]ModelCtor)

// the common interface LDA samplers should follow
type Model interface {
	// train model for iter sweeps
	Train(iter int, hooks ...SweepHook) error
	// do inference for new docs for iter sweeps
	Infer(docs [][]uint32, iter int) ([][]float64, error)
	// get doc-topic distribution
	Theta() [][]float64
	// get topic-word distribution
	Phi() [][]float64
	// get the n most probable words of every topic
	TopWords(n int) [][]WordProb
	// joint likelihood of the training corpus
	LogLikelihood() float64
}

// new LDA sampler should register itself using this function
func Register(modelType string, m ModelCtor) {
	constructors[modelType] = m
}

type ModelCtor func(dat *corpus.Corpus, cfg Config) (Model, error)

func GetModel(modelType string) (ModelCtor, error) {
	if _, ok := constructors[modelType]; !ok {
		return nil, fmt.Errorf("model %s not registered", modelType)
	}
	return constructors[modelType], nil
}

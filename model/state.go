package model

import (
	"github.com/pkg/errors"

	"github.com/bobonovski/ldagibbs/matrix"
)

// State holds the complete sufficient statistics of a sampling run: the
// topic of every word occurrence and the four count tables derived from
// it. Between the retract and commit of a single token the totals are
// transiently off by one, so a State must not be read concurrently with
// a running sweep.
type State struct {
	// [d, t]-th element counts how many words in
	// document d are assigned to topic t
	DocTopic *matrix.Uint32Matrix
	// column vector of length docNum: [d]-th element
	// is the number of words in document d
	DocTotal *matrix.Uint32Matrix
	// [t, w]-th element counts how many times word w
	// is assigned to topic t over the whole corpus
	TopicWord *matrix.Uint32Matrix
	// column vector of length topicNum: [t]-th element counts
	// how many words in total are assigned to topic t
	TopicTotal *matrix.Uint32Matrix
	// Z[d][i] is the topic of the i-th word of document d
	Z [][]uint32

	initialized bool
}

// NewState allocates empty count tables for the given documents.
func NewState(docs [][]uint32, topicNum, vocabSize uint32) *State {
	docNum := uint32(len(docs))
	z := make([][]uint32, docNum)
	for d, doc := range docs {
		z[d] = make([]uint32, len(doc))
	}
	return &State{
		DocTopic:   matrix.NewUint32Matrix(docNum, topicNum),
		DocTotal:   matrix.NewUint32Matrix(docNum, uint32(1)),
		TopicWord:  matrix.NewUint32Matrix(topicNum, vocabSize),
		TopicTotal: matrix.NewUint32Matrix(topicNum, uint32(1)),
		Z:          z,
	}
}

func (s *State) Initialized() bool {
	return s.initialized
}

func (s *State) topicNum() uint32 {
	k, _ := s.TopicWord.Shape()
	return k
}

func (s *State) vocabSize() uint32 {
	_, v := s.TopicWord.Shape()
	return v
}

// add the i-th word w of document d to topic k
func (s *State) commit(d, i, w, k uint32) {
	s.Z[d][i] = k
	s.DocTopic.Incr(d, k, uint32(1))
	s.DocTotal.Incr(d, uint32(0), uint32(1))
	s.TopicWord.Incr(k, w, uint32(1))
	s.TopicTotal.Incr(k, uint32(0), uint32(1))
}

// remove the i-th word w of document d from its current topic
func (s *State) retract(d, i, w uint32) uint32 {
	k := s.Z[d][i]
	s.DocTopic.Decr(d, k, uint32(1))
	s.DocTotal.Decr(d, uint32(0), uint32(1))
	s.TopicWord.Decr(k, w, uint32(1))
	s.TopicTotal.Decr(k, uint32(0), uint32(1))
	return k
}

// assign rebuilds every count from the given topic assignments. The
// assignments are validated before any count is touched.
func (s *State) assign(docs [][]uint32, z [][]uint32) error {
	if s.initialized {
		return errors.Wrap(ErrState, "count state already initialized")
	}
	if len(z) != len(docs) {
		return errors.Wrapf(ErrState, "assignments cover %d documents, corpus has %d", len(z), len(docs))
	}
	topicNum, vocabSize := s.topicNum(), s.vocabSize()
	for d, doc := range docs {
		if len(z[d]) != len(doc) {
			return errors.Wrapf(ErrState, "document %d has %d words but %d assignments", d, len(doc), len(z[d]))
		}
		for i, w := range doc {
			if w >= vocabSize {
				return errors.Wrapf(ErrIndexOutOfRange, "document %d position %d: word %d outside vocabulary of %d", d, i, w, vocabSize)
			}
			if z[d][i] >= topicNum {
				return errors.Wrapf(ErrState, "document %d position %d: topic %d outside %d topics", d, i, z[d][i], topicNum)
			}
		}
	}

	for d, doc := range docs {
		for i, w := range doc {
			s.commit(uint32(d), uint32(i), w, z[d][i])
		}
	}
	s.initialized = true
	return nil
}

// Check recomputes every count from Z and docs and reports the first
// disagreement with the incrementally maintained tables.
func (s *State) Check(docs [][]uint32) error {
	topicNum, vocabSize := s.topicNum(), s.vocabSize()
	docTopic := matrix.NewUint32Matrix(uint32(len(docs)), topicNum)
	topicWord := matrix.NewUint32Matrix(topicNum, vocabSize)
	if len(s.Z) != len(docs) {
		return errors.Wrapf(ErrState, "assignments cover %d documents, corpus has %d", len(s.Z), len(docs))
	}
	for d, doc := range docs {
		if len(s.Z[d]) != len(doc) {
			return errors.Wrapf(ErrState, "document %d has %d words but %d assignments", d, len(doc), len(s.Z[d]))
		}
		for i, w := range doc {
			if w >= vocabSize || s.Z[d][i] >= topicNum {
				return errors.Wrapf(ErrIndexOutOfRange, "document %d position %d: word %d topic %d", d, i, w, s.Z[d][i])
			}
			docTopic.Incr(uint32(d), s.Z[d][i], uint32(1))
			topicWord.Incr(s.Z[d][i], w, uint32(1))
		}
	}

	total := uint64(0)
	for d, doc := range docs {
		rowSum := uint64(0)
		for t := uint32(0); t < topicNum; t += 1 {
			if got, want := s.DocTopic.Get(uint32(d), t), docTopic.Get(uint32(d), t); got != want {
				return errors.Wrapf(ErrState, "doc-topic[%d][%d] = %d, assignments give %d", d, t, got, want)
			}
			rowSum += uint64(s.DocTopic.Get(uint32(d), t))
		}
		docTotal := uint64(s.DocTotal.Get(uint32(d), uint32(0)))
		if rowSum != docTotal || docTotal != uint64(len(doc)) {
			return errors.Wrapf(ErrState, "document %d: topic counts sum to %d, total %d, length %d", d, rowSum, docTotal, len(doc))
		}
		total += docTotal
	}

	topicSum := uint64(0)
	for t := uint32(0); t < topicNum; t += 1 {
		rowSum := uint64(0)
		for w := uint32(0); w < vocabSize; w += 1 {
			if got, want := s.TopicWord.Get(t, w), topicWord.Get(t, w); got != want {
				return errors.Wrapf(ErrState, "topic-word[%d][%d] = %d, assignments give %d", t, w, got, want)
			}
			rowSum += uint64(s.TopicWord.Get(t, w))
		}
		if topicTotal := uint64(s.TopicTotal.Get(t, uint32(0))); rowSum != topicTotal {
			return errors.Wrapf(ErrState, "topic %d: word counts sum to %d, total %d", t, rowSum, topicTotal)
		}
		topicSum += rowSum
	}
	if topicSum != total {
		return errors.Wrapf(ErrState, "topics hold %d words, documents hold %d", topicSum, total)
	}
	return nil
}

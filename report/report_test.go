package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobonovski/ldagibbs/corpus"
	"github.com/bobonovski/ldagibbs/model"
)

type fakeModel struct {
	model.Model
	tops [][]model.WordProb
}

func (f *fakeModel) TopWords(n int) [][]model.WordProb {
	out := make([][]model.WordProb, len(f.tops))
	for k, words := range f.tops {
		if n < len(words) {
			words = words[:n]
		}
		out[k] = words
	}
	return out
}

func newFake() *fakeModel {
	return &fakeModel{tops: [][]model.WordProb{
		{{Id: 0, Original: 4, Prob: 0.6}, {Id: 1, Original: 9, Prob: 0.3}},
		{{Id: 1, Original: 9, Prob: 0.7}, {Id: 0, Original: 4, Prob: 0.2}},
	}}
}

func TestTopicWords(t *testing.T) {
	dict := corpus.Dictionary{4: "apple"}

	topics := TopicWords(newFake(), dict, 2)
	require.Len(t, topics, 2)
	assert.Equal(t, Topic{Id: 0, Words: []Word{
		{Text: "apple", Id: 4, Prob: 0.6},
		{Text: "9", Id: 9, Prob: 0.3},
	}}, topics[0])

	topics = TopicWords(newFake(), dict, 0)
	for _, topic := range topics {
		assert.Empty(t, topic.Words)
	}
}

func TestWriteTopicsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTopicsJSON(&buf, TopicWords(newFake(), corpus.Dictionary{9: "pear"}, 1)))

	var decoded []Topic
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "pear", decoded[1].Words[0].Text)
	assert.Equal(t, 0.7, decoded[1].Words[0].Prob)
}

func TestWriteTheta(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTheta(&buf, [][]float64{{0.25, 0.75}}))
	assert.Equal(t, "***Topics per Document***\nDocument 0:\nTopic 0:0.25\tTopic 1:0.75\t\n", buf.String())
}

func TestWriteTopics(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTopics(&buf, []Topic{{Id: 0, Words: []Word{{Text: "apple", Prob: 0.5}}}}))
	assert.Equal(t, "Topic 0: apple(0.5000)\n", buf.String())
}

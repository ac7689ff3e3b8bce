package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/bobonovski/ldagibbs/corpus"
	"github.com/bobonovski/ldagibbs/model"
)

// Word is a ranked word of a topic in its surface form.
type Word struct {
	Text string  `json:"word"`
	Id   uint32  `json:"id"`
	Prob float64 `json:"prob"`
}

type Topic struct {
	Id    int    `json:"topic"`
	Words []Word `json:"words"`
}

// TopicWords ranks the n most probable words of every topic and maps
// them through the reverse dictionary.
func TopicWords(m model.Model, dict corpus.Dictionary, n int) []Topic {
	tops := m.TopWords(n)
	topics := make([]Topic, len(tops))
	for k, words := range tops {
		topic := Topic{Id: k, Words: make([]Word, len(words))}
		for i, wp := range words {
			topic.Words[i] = Word{
				Text: dict.Word(wp.Original),
				Id:   wp.Original,
				Prob: wp.Prob,
			}
		}
		topics[k] = topic
	}
	return topics
}

func WriteTopicsJSON(w io.Writer, topics []Topic) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(topics), "encode topics")
}

// WriteTheta prints the document-topic distribution, one block per
// document.
func WriteTheta(w io.Writer, theta [][]float64) error {
	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "***Topics per Document***")
	for d, row := range theta {
		fmt.Fprintf(out, "Document %d:\n", d)
		for k, val := range row {
			fmt.Fprintf(out, "Topic %d:%g\t", k, val)
		}
		fmt.Fprintln(out)
	}
	return errors.Wrap(out.Flush(), "write theta report")
}

// WriteTopics prints the ranked words of every topic.
func WriteTopics(w io.Writer, topics []Topic) error {
	out := bufio.NewWriter(w)
	for _, topic := range topics {
		fmt.Fprintf(out, "Topic %d:", topic.Id)
		for _, word := range topic.Words {
			fmt.Fprintf(out, " %s(%.4f)", word.Text, word.Prob)
		}
		fmt.Fprintln(out)
	}
	return errors.Wrap(out.Flush(), "write topic report")
}

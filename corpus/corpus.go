package corpus

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	log "github.com/golang/glog"
	"github.com/pkg/errors"
)

// ErrMalformedInput is the cause of every parse failure in this package.
var ErrMalformedInput = errors.New("corpus: malformed input")

// Corpus holds documents as sequences of dense word ids. Original ids are
// remapped in ascending order to [0, VocabSize) so counts can index
// straight into arrays, input that is already dense maps onto itself.
type Corpus struct {
	VocabSize uint32
	DocNum    uint32
	Docs      [][]uint32
	// Vocab[dense] is the original id of a dense word id
	Vocab []uint32

	index map[uint32]uint32
}

// load training data from a file, see Load for the format
func LoadFile(fn string) (*Corpus, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "open corpus %s", fn)
	}
	defer f.Close()
	return Load(f)
}

// Load reads one document per line, each line a sequence of whitespace
// or tab separated non-negative integer word ids. Blank lines are skipped.
func Load(r io.Reader) (*Corpus, error) {
	var docs [][]uint32

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)
	lineIdx := 0
	for scanner.Scan() {
		lineIdx += 1
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		doc := make([]uint32, 0, len(fields))
		for _, field := range fields {
			wordId, err := strconv.ParseUint(field, 10, 32)
			if err != nil {
				return nil, errors.Wrapf(ErrMalformedInput,
					"line %d: token %q is not a non-negative integer", lineIdx, field)
			}
			doc = append(doc, uint32(wordId))
		}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read corpus")
	}

	c := FromDocs(docs)
	log.Infof("number of documents %d", c.DocNum)
	log.Infof("vocabulary size %d", c.VocabSize)
	return c, nil
}

// FromDocs builds a corpus from documents of original word ids. The
// input slices are not retained.
func FromDocs(docs [][]uint32) *Corpus {
	seen := make(map[uint32]struct{})
	for _, doc := range docs {
		for _, w := range doc {
			seen[w] = struct{}{}
		}
	}

	vocab := make([]uint32, 0, len(seen))
	for w := range seen {
		vocab = append(vocab, w)
	}
	sort.Slice(vocab, func(i, j int) bool { return vocab[i] < vocab[j] })

	index := make(map[uint32]uint32, len(vocab))
	for dense, w := range vocab {
		index[w] = uint32(dense)
	}

	c := &Corpus{
		VocabSize: uint32(len(vocab)),
		DocNum:    uint32(len(docs)),
		Docs:      make([][]uint32, len(docs)),
		Vocab:     vocab,
		index:     index,
	}
	for d, doc := range docs {
		dense := make([]uint32, len(doc))
		for i, w := range doc {
			dense[i] = index[w]
		}
		c.Docs[d] = dense
	}
	return c
}

// FromDense rebuilds a corpus whose documents are already expressed in
// dense ids, vocab maps those ids back to the original ones.
func FromDense(docs [][]uint32, vocab []uint32) *Corpus {
	index := make(map[uint32]uint32, len(vocab))
	for dense, w := range vocab {
		index[w] = uint32(dense)
	}
	return &Corpus{
		VocabSize: uint32(len(vocab)),
		DocNum:    uint32(len(docs)),
		Docs:      docs,
		Vocab:     vocab,
		index:     index,
	}
}

// Index returns the dense id of an original word id.
func (this *Corpus) Index(original uint32) (uint32, bool) {
	dense, ok := this.index[original]
	return dense, ok
}

// Encode maps documents of original ids onto this corpus' vocabulary.
// Ids never seen in the corpus are dropped and counted in the returned
// value.
func (this *Corpus) Encode(docs [][]uint32) ([][]uint32, int) {
	dropped := 0
	encoded := make([][]uint32, len(docs))
	for d, doc := range docs {
		dense := make([]uint32, 0, len(doc))
		for _, w := range doc {
			if id, ok := this.index[w]; ok {
				dense = append(dense, id)
			} else {
				dropped += 1
			}
		}
		encoded[d] = dense
	}
	return encoded, dropped
}

// TokenNum is the number of word occurrences over all documents.
func (this *Corpus) TokenNum() int {
	n := 0
	for _, doc := range this.Docs {
		n += len(doc)
	}
	return n
}

// Originals returns the documents expressed in original word ids.
func (this *Corpus) Originals() [][]uint32 {
	docs := make([][]uint32, len(this.Docs))
	for d, doc := range this.Docs {
		original := make([]uint32, len(doc))
		for i, w := range doc {
			original[i] = this.Vocab[w]
		}
		docs[d] = original
	}
	return docs
}

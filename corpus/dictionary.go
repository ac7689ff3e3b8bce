package corpus

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Dictionary maps original word ids back to their surface form.
type Dictionary map[uint32]string

// Word returns the surface form of an original id, or the id itself
// when the dictionary has no entry for it.
func (d Dictionary) Word(id uint32) string {
	if w, ok := d[id]; ok {
		return w
	}
	return strconv.FormatUint(uint64(id), 10)
}

func LoadDictionaryFile(fn string) (Dictionary, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, errors.Wrapf(err, "open dictionary %s", fn)
	}
	defer f.Close()
	return LoadDictionary(f)
}

// LoadDictionary reads a JSON object of the form {"0": "word", ...}.
func LoadDictionary(r io.Reader) (Dictionary, error) {
	var raw map[string]string
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.Wrapf(ErrMalformedInput, "decode dictionary: %v", err)
	}

	dict := make(Dictionary, len(raw))
	for k, word := range raw {
		id, err := strconv.ParseUint(k, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(ErrMalformedInput, "dictionary key %q is not a word id", k)
		}
		dict[uint32(id)] = word
	}
	return dict, nil
}

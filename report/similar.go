package report

import (
	"math/rand"
	"sort"

	"github.com/coder/hnsw"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/bobonovski/ldagibbs/matrix"
)

// Neighbor is a document close to the query in topic space.
type Neighbor struct {
	Doc        int
	Similarity float64 // cosine similarity of the two topic mixtures
}

// exactSearchSize is the largest corpus for which a query walks the whole
// graph, so the neighbours returned are the exact top k.
const exactSearchSize = 2048

// Similarity answers nearest-neighbour queries over document-topic
// distributions with an HNSW graph under cosine distance. The graph only
// proposes candidates, they are ranked by exact cosine similarity.
type Similarity struct {
	graph *hnsw.Graph[int]
	theta [][]float64
}

func NewSimilarity(theta [][]float64, seed int64) *Similarity {
	g := hnsw.NewGraph[int]()
	g.Distance = hnsw.CosineDistance
	g.Rng = rand.New(rand.NewSource(seed))
	if n := len(theta); n > g.EfSearch {
		g.EfSearch = min(n, exactSearchSize)
	}

	nodes := make([]hnsw.Node[int], len(theta))
	for d, row := range theta {
		nodes[d] = hnsw.MakeNode(d, toVector(row))
	}
	if len(nodes) > 0 {
		g.Add(nodes...)
	}
	return &Similarity{graph: g, theta: theta}
}

// Similar returns up to k other documents ordered by decreasing cosine
// similarity to doc.
func (s *Similarity) Similar(doc, k int) ([]Neighbor, error) {
	if doc < 0 || doc >= len(s.theta) {
		return nil, errors.Wrapf(matrix.ErrIndexOutOfRange, "document %d of %d", doc, len(s.theta))
	}
	if k <= 0 {
		return nil, nil
	}

	query := s.theta[doc]
	found := s.graph.Search(toVector(query), s.width(k))
	neighbors := make([]Neighbor, 0, len(found))
	for _, node := range found {
		if node.Key == doc {
			continue
		}
		neighbors = append(neighbors, Neighbor{
			Doc:        node.Key,
			Similarity: cosine(query, s.theta[node.Key]),
		})
	}
	sort.Slice(neighbors, func(i, j int) bool {
		if neighbors[i].Similarity != neighbors[j].Similarity {
			return neighbors[i].Similarity > neighbors[j].Similarity
		}
		return neighbors[i].Doc < neighbors[j].Doc
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// width is the number of candidates a query asks the graph for. Small
// corpora ask for every document, larger ones for at least EfSearch.
func (s *Similarity) width(k int) int {
	n := len(s.theta)
	if n <= exactSearchSize {
		return n
	}
	return min(n, max(k+1, s.graph.EfSearch))
}

func cosine(a, b []float64) float64 {
	return floats.Dot(a, b) / (floats.Norm(a, 2) * floats.Norm(b, 2))
}

func toVector(row []float64) []float32 {
	v := make([]float32, len(row))
	for i, x := range row {
		v[i] = float32(x)
	}
	return v
}

package index

import (
	"context"
	"fmt"
	"math"

	"github.com/fogfish/hnsw"
	"github.com/fogfish/hnsw/vector"
	kvector "github.com/kshard/vector"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
)

// passage is an indexed chunk plus the metadata needed to turn a search hit
// back into a retrieval result.
type passage struct {
	text           string
	sourceFilename string
	embedding      []float32
}

// Index is an in-memory cosine ANN index over the passages of one scoped
// document set. It is immutable after construction and safe for concurrent
// queries.
type Index struct {
	ann      *hnsw.HNSW[vector.VF32]
	passages []passage
	embedder interfaces.LLMService
}

func newIndex(embedder interfaces.LLMService) *Index {
	return &Index{
		ann:      hnsw.New[vector.VF32](vector.SurfaceVF32(kvector.Cosine())),
		embedder: embedder,
	}
}

// add embeds a chunk and inserts it. Keys are positions in the passages
// slice, so lookups after Search are a direct index.
func (idx *Index) add(ctx context.Context, text, sourceFilename string) error {
	embedding, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		return fmt.Errorf("failed to embed passage from %s: %w", sourceFilename, err)
	}

	key := uint32(len(idx.passages))
	idx.passages = append(idx.passages, passage{
		text:           text,
		sourceFilename: sourceFilename,
		embedding:      embedding,
	})
	idx.ann.Insert(vector.VF32{Key: key, Vec: embedding})
	return nil
}

// Query embeds the question and returns the top-k passages ranked by cosine
// similarity, highest score first.
func (idx *Index) Query(ctx context.Context, question string, k int) ([]models.RetrievalPassage, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if len(idx.passages) == 0 {
		return nil, nil
	}

	queryVec, err := idx.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}

	ef := k * 2
	if ef < 100 {
		ef = 100
	}

	hits := idx.ann.Search(vector.VF32{Vec: queryVec}, k, ef)

	// Search reports neighbors by key only, so similarity is recomputed
	// here for the ranking score.
	results := make([]models.RetrievalPassage, 0, len(hits))
	for _, hit := range hits {
		p := idx.passages[hit.Key]
		results = append(results, models.RetrievalPassage{
			Text:           p.text,
			SourceFilename: p.sourceFilename,
			Score:          cosineSimilarity(queryVec, p.embedding),
		})
	}

	return results, nil
}

// Size returns the number of indexed passages
func (idx *Index) Size() int {
	return len(idx.passages)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

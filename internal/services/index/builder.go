package index

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/dirigo/internal/interfaces"
	"github.com/ternarybob/dirigo/internal/models"
)

// Builder constructs scoped retrieval indexes and caches them. A cached
// index is reused as long as the (document-set fingerprint, region) key is
// unchanged; any change to the underlying documents produces a new
// fingerprint and a full rebuild.
type Builder struct {
	embedder     interfaces.LLMService
	maxChunkSize int
	cache        *cache.Cache
	mu           sync.Mutex
	logger       arbor.ILogger
}

// NewBuilder creates an index builder with the given cache TTL
func NewBuilder(embedder interfaces.LLMService, maxChunkSize int, ttl time.Duration, logger arbor.ILogger) *Builder {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Builder{
		embedder:     embedder,
		maxChunkSize: maxChunkSize,
		cache:        cache.New(ttl, 10*time.Minute),
		logger:       logger,
	}
}

// Ensure returns the retrieval index for the given scoped document set,
// building it on a cache miss. Building embeds every passage and is by far
// the most expensive operation here; the mutex keeps concurrent callers
// from racing to build the same index twice.
func (b *Builder) Ensure(ctx context.Context, directives []*models.Directive, region string) (interfaces.RetrievalIndex, error) {
	if len(directives) == 0 {
		return nil, fmt.Errorf("cannot build retrieval index over empty document set")
	}

	key := cacheKey(directives, region)

	b.mu.Lock()
	defer b.mu.Unlock()

	if cached, found := b.cache.Get(key); found {
		idx := cached.(*Index)
		b.logger.Debug().
			Str("region", region).
			Int("passages", idx.Size()).
			Msg("Reusing cached retrieval index")
		return idx, nil
	}

	startTime := time.Now()
	b.logger.Info().
		Str("region", region).
		Int("directives", len(directives)).
		Msg("Building retrieval index")

	idx := newIndex(b.embedder)
	for _, directive := range directives {
		chunks := chunkText(directive.Content, b.maxChunkSize)
		for _, chunk := range chunks {
			if err := idx.add(ctx, chunk, directive.Filename); err != nil {
				return nil, fmt.Errorf("failed to index %s: %w", directive.Filename, err)
			}
		}
	}

	if idx.Size() == 0 {
		return nil, fmt.Errorf("no indexable passages in %d directives", len(directives))
	}

	b.cache.SetDefault(key, idx)

	b.logger.Info().
		Str("region", region).
		Int("passages", idx.Size()).
		Dur("duration", time.Since(startTime)).
		Msg("Retrieval index built")

	return idx, nil
}

// cacheKey fingerprints the document set (filenames and update times, order
// independent) and appends the region so different scopes never share an
// index.
func cacheKey(directives []*models.Directive, region string) string {
	entries := make([]string, 0, len(directives))
	for _, d := range directives {
		entries = append(entries, d.Filename+"|"+d.UpdatedAt.UTC().Format(time.RFC3339Nano))
	}
	sort.Strings(entries)

	h := sha256.Sum256([]byte(strings.Join(entries, "\n")))
	return hex.EncodeToString(h[:]) + "|" + region
}

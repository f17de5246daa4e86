package intelligence

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Embedder converts text into a numeric vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
}

// ReferenceIndex holds one reference embedding per behavior, computed
// once at session start from the behavior's reference description.
type ReferenceIndex struct {
	mu      sync.RWMutex
	vectors map[Behavior][]float64
}

// BuildReferenceIndex embeds every behavior's reference description.
// All embeddings must succeed: a partial table would silently bias
// routing, so any failure aborts the build and the session must not
// accept routed input.
func BuildReferenceIndex(ctx context.Context, embedder Embedder) (*ReferenceIndex, error) {
	index := &ReferenceIndex{
		vectors: make(map[Behavior][]float64, len(referenceDescriptions)),
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, behavior := range AllBehaviors() {
		behavior := behavior
		description, ok := referenceDescriptions[behavior]
		if !ok {
			return nil, fmt.Errorf("behavior %q has no reference description", behavior)
		}

		g.Go(func() error {
			vec, err := embedder.Embed(ctx, description)
			if err != nil {
				return fmt.Errorf("embedding reference for %q: %w", behavior, err)
			}
			index.mu.Lock()
			index.vectors[behavior] = vec
			index.mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return index, nil
}

// Vector returns the reference embedding for a behavior, or nil if the
// behavior is unknown.
func (ix *ReferenceIndex) Vector(b Behavior) []float64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.vectors[b]
}

// Len returns the number of reference embeddings held.
func (ix *ReferenceIndex) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors)
}

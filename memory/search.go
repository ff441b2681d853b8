package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/poiesic/didact/core"
)

// SearchRelevantContent finds the stored chunks most relevant to a query.
//
// The query is expanded into variations (expansion failure falls back to
// the original query alone), each variation is embedded and scored against
// stored chunk vectors, and a chunk matched by several variations keeps
// its best score. Chunks whose parent document carries concept
// relationships get a bonus of relBonusPerEdge per edge, capped at
// relBonusCap. Results at or above minScore are returned best first, at
// most limit of them.
func (s *Store) SearchRelevantContent(ctx context.Context, query string, limit int, minScore float32) ([]core.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	if limit < 1 {
		limit = 1
	}

	variations := s.expandQuery(ctx, query)

	// A chunk found via several variations keeps its best base score.
	best := make(map[core.ID]*core.SearchResult)
	for _, variation := range variations {
		vec, err := s.embedder.EmbedText(ctx, variation)
		if err != nil {
			return nil, err
		}
		if len(vec) == 0 {
			continue
		}

		// Candidates below minScore may still clear it after the
		// relationship bonus, so collect down to minScore - cap.
		matches, err := s.docs.FindSimilarChunks(ctx, vec, minScore-s.relBonusCap, limit*4)
		if err != nil {
			return nil, err
		}

		for _, m := range matches {
			if prev, ok := best[m.Chunk.Id]; !ok || m.Score > prev.Score {
				best[m.Chunk.Id] = m
			}
		}
	}

	// Relationship bonus, memoized per parent document.
	edgeCounts := make(map[core.ID]int)
	results := make([]core.SearchResult, 0, len(best))
	for _, r := range best {
		docID := r.Chunk.DocumentID
		edges, ok := edgeCounts[docID]
		if !ok {
			rels, err := s.concepts.GetRelationshipsByDocument(ctx, docID)
			if err != nil {
				return nil, err
			}
			edges = len(rels)
			edgeCounts[docID] = edges
		}

		bonus := s.relBonusPerEdge * float32(edges)
		if bonus > s.relBonusCap {
			bonus = s.relBonusCap
		}
		r.Score += bonus

		if r.Score >= minScore {
			results = append(results, *r)
		}
	}

	slices.SortFunc(results, func(a, b core.SearchResult) int {
		if a.Score > b.Score {
			return -1
		}
		if a.Score < b.Score {
			return 1
		}
		// Stable order for equal scores
		if a.Chunk.Id < b.Chunk.Id {
			return -1
		}
		if a.Chunk.Id > b.Chunk.Id {
			return 1
		}
		return 0
	})

	if len(results) > limit {
		results = results[:limit]
	}

	s.logger.Debug("search complete",
		"query", query,
		"variations", len(variations),
		"results", len(results))

	return results, nil
}

// expandQuery returns the query variations to search with. Expansion is
// best-effort: no expander or a failing expander falls back to the
// original query alone.
func (s *Store) expandQuery(ctx context.Context, query string) []string {
	if s.expander == nil {
		return []string{query}
	}

	variations, err := s.expander.ExpandQuery(ctx, query)
	if err != nil || len(variations) == 0 {
		if err != nil {
			s.logger.Warn("query expansion failed, using original query", "err", err)
		}
		return []string{query}
	}
	return variations
}

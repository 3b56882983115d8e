package annotate

import (
	"sort"

	"github.com/varsight/varsight/internal/cache"
	"github.com/varsight/varsight/internal/variant"
)

// fusionCandidates point-queries the transcript index at every breakend's
// partner location and unions the hits into a deduplicated candidate set: a
// transcript hit by multiple breakends counts once. The set is returned
// sorted by transcript identity so output is deterministic.
func (o *Orchestrator) fusionCandidates(breakends []variant.Breakend) []*cache.Transcript {
	seen := make(map[string]*cache.Transcript)
	for _, b := range breakends {
		if !b.Chrom.IsMapped() {
			continue
		}
		for _, t := range o.cache.TranscriptsAt(b.Chrom.Index, b.Position) {
			seen[t.ID] = t
		}
	}
	if len(seen) == 0 {
		return nil
	}

	candidates := make([]*cache.Transcript, 0, len(seen))
	for _, t := range seen {
		candidates = append(candidates, t)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].ID < candidates[j].ID
	})
	return candidates
}

package cache

import "github.com/varsight/varsight/internal/genome"

// RegulatoryRegion is an immutable non-coding genomic interval with a
// functional annotation tag. Same lifecycle as Transcript: created at cache
// load time and read-only thereafter.
type RegulatoryRegion struct {
	ID    string            // regulatory region stable ID (e.g. ENSR00000344265)
	Chrom genome.Chromosome // chromosome reference
	Start int64             // region start (1-based)
	End   int64             // region end (1-based, inclusive)
	Type  string            // region type tag (e.g. promoter, enhancer)
}

// Span returns the region's genomic interval.
func (r *RegulatoryRegion) Span() (int64, int64) {
	return r.Start, r.End
}

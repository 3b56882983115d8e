// Package cache provides the binary transcript cache: the immutable reference
// model (transcripts, regulatory regions, data-source metadata) plus
// per-chromosome interval indexes over it.
package cache

import "github.com/varsight/varsight/internal/genome"

// Transcript is an immutable gene isoform model. Created once at cache load
// time, never mutated, and safe to share read-only across queries.
type Transcript struct {
	ID          string            // transcript stable ID (e.g. ENST00000311936)
	Version     uint8             // transcript version
	GeneID      string            // parent gene ID
	GeneName    string            // parent gene symbol
	Chrom       genome.Chromosome // chromosome reference
	Start       int64             // transcript start (1-based)
	End         int64             // transcript end (1-based, inclusive)
	Strand      int8              // +1 or -1
	Biotype     string            // transcript biotype
	CodingStart int64             // coding region start (genomic, 1-based), 0 if non-coding
	CodingEnd   int64             // coding region end (genomic, 1-based), 0 if non-coding
	IsCanonical bool
}

// Span returns the transcript's genomic interval.
func (t *Transcript) Span() (int64, int64) {
	return t.Start, t.End
}

// IsProteinCoding returns true if the transcript has a coding region.
func (t *Transcript) IsProteinCoding() bool {
	return t.CodingStart > 0 && t.CodingEnd > 0
}

// IsForwardStrand returns true if the transcript is on the forward strand.
func (t *Transcript) IsForwardStrand() bool {
	return t.Strand == 1
}

// Contains returns true if pos falls within the transcript boundaries.
func (t *Transcript) Contains(pos int64) bool {
	return pos >= t.Start && pos <= t.End
}

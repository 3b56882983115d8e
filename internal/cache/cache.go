package cache

import (
	"strings"

	"github.com/varsight/varsight/internal/genome"
	"github.com/varsight/varsight/internal/index"
)

// TranscriptCache is the immutable reference model plus the interval indexes
// built over it. Constructed once by Read and read-only thereafter; safe to
// share across any number of concurrent annotators.
type TranscriptCache struct {
	Assembly    genome.Assembly
	VepVersion  string
	DataSources []DataSourceVersion

	chromosomes []string
	chromIndex  map[string]uint16

	transcripts []*index.IntervalIndex[*Transcript]       // by chromosome index
	regulatory  []*index.IntervalIndex[*RegulatoryRegion] // by chromosome index
}

func newTranscriptCache(h *Header, transcripts [][]*Transcript, regulatory [][]*RegulatoryRegion) *TranscriptCache {
	c := &TranscriptCache{
		Assembly:    h.Assembly,
		VepVersion:  h.VepVersion,
		DataSources: h.DataSources,
		chromosomes: h.Chromosomes,
		chromIndex:  make(map[string]uint16, len(h.Chromosomes)),
		transcripts: make([]*index.IntervalIndex[*Transcript], len(h.Chromosomes)),
		regulatory:  make([]*index.IntervalIndex[*RegulatoryRegion], len(h.Chromosomes)),
	}

	for i, name := range h.Chromosomes {
		c.chromIndex[name] = uint16(i)
	}

	for i := range c.chromosomes {
		var txs []*Transcript
		if i < len(transcripts) {
			txs = transcripts[i]
		}
		var regs []*RegulatoryRegion
		if i < len(regulatory) {
			regs = regulatory[i]
		}
		c.transcripts[i] = index.Build(txs)
		c.regulatory[i] = index.Build(regs)
	}

	return c
}

// Chromosomes returns the cache's chromosome name table. The dense chromosome
// index of a name is its position in this slice.
func (c *TranscriptCache) Chromosomes() []string {
	return c.chromosomes
}

// ChromosomeByName resolves a chromosome name (with or without the "chr"
// prefix) to a chromosome reference. Unknown names map to the unmapped
// sentinel.
func (c *TranscriptCache) ChromosomeByName(name string) genome.Chromosome {
	if idx, ok := c.chromIndex[name]; ok {
		return genome.Chromosome{Name: c.chromosomes[idx], Index: idx}
	}
	trimmed := strings.TrimPrefix(name, "chr")
	if idx, ok := c.chromIndex[trimmed]; ok {
		return genome.Chromosome{Name: c.chromosomes[idx], Index: idx}
	}
	return genome.Unmapped
}

// TranscriptsOverlapping returns all transcripts on the chromosome whose
// interval intersects [start, end]. A miss, an unmapped chromosome, or an
// index outside the cache's table all yield a length-0 result, never an
// absence value.
func (c *TranscriptCache) TranscriptsOverlapping(chromIndex uint16, start, end int64) []*Transcript {
	if int(chromIndex) >= len(c.transcripts) {
		return nil
	}
	return c.transcripts[chromIndex].Overlapping(start, end)
}

// TranscriptsAt returns all transcripts containing pos. Used for breakend
// partner point queries.
func (c *TranscriptCache) TranscriptsAt(chromIndex uint16, pos int64) []*Transcript {
	if int(chromIndex) >= len(c.transcripts) {
		return nil
	}
	return c.transcripts[chromIndex].At(pos)
}

// RegulatoryOverlapping returns all regulatory regions on the chromosome
// whose interval intersects [start, end].
func (c *TranscriptCache) RegulatoryOverlapping(chromIndex uint16, start, end int64) []*RegulatoryRegion {
	if int(chromIndex) >= len(c.regulatory) {
		return nil
	}
	return c.regulatory[chromIndex].Overlapping(start, end)
}

// TranscriptsByChrom returns all transcripts on a chromosome in (start, end)
// order. Used by the DuckDB exporter and the inspect command.
func (c *TranscriptCache) TranscriptsByChrom(chromIndex uint16) []*Transcript {
	if int(chromIndex) >= len(c.transcripts) {
		return nil
	}
	return c.transcripts[chromIndex].Items()
}

// RegulatoryByChrom returns all regulatory regions on a chromosome in
// (start, end) order.
func (c *TranscriptCache) RegulatoryByChrom(chromIndex uint16) []*RegulatoryRegion {
	if int(chromIndex) >= len(c.regulatory) {
		return nil
	}
	return c.regulatory[chromIndex].Items()
}

// TranscriptCount returns the total number of transcripts in the cache.
func (c *TranscriptCache) TranscriptCount() int {
	n := 0
	for _, idx := range c.transcripts {
		n += idx.Len()
	}
	return n
}

// RegulatoryCount returns the total number of regulatory regions in the cache.
func (c *TranscriptCache) RegulatoryCount() int {
	n := 0
	for _, idx := range c.regulatory {
		n += idx.Len()
	}
	return n
}

// Package genome provides reference genome identifiers: assemblies and
// chromosome references with dense per-cache indexes.
package genome

import "math"

// Assembly identifies the reference genome build coordinates are defined against.
type Assembly uint8

const (
	AssemblyUnknown Assembly = iota
	GRCh37
	GRCh38
)

// String returns the conventional assembly name.
func (a Assembly) String() string {
	switch a {
	case GRCh37:
		return "GRCh37"
	case GRCh38:
		return "GRCh38"
	}
	return "unknown"
}

// ParseAssembly maps an assembly name to its enum value.
// Returns AssemblyUnknown for unrecognized names.
func ParseAssembly(name string) Assembly {
	switch name {
	case "GRCh37", "grch37", "hg19":
		return GRCh37
	case "GRCh38", "grch38", "hg38":
		return GRCh38
	}
	return AssemblyUnknown
}

// InvalidChromIndex is the reserved sentinel meaning "no chromosome" / unmapped.
const InvalidChromIndex uint16 = math.MaxUint16

// Chromosome references one chromosome of an assembly. Index is the dense
// zero-based position of the chromosome in the cache's chromosome table and is
// used to select per-chromosome structures.
type Chromosome struct {
	Name  string
	Index uint16
}

// Unmapped is the chromosome reference used for positions that could not be
// mapped to the cache's chromosome table.
var Unmapped = Chromosome{Name: "", Index: InvalidChromIndex}

// IsMapped returns true if the chromosome carries a usable dense index.
func (c Chromosome) IsMapped() bool {
	return c.Index != InvalidChromIndex
}

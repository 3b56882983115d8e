// Package variant defines the caller-owned, mutable position and variant
// model the annotation engine operates on. Positions are produced upstream
// (VCF parsing is out of scope here); the engine only appends to each
// variant's annotation lists.
package variant

import "github.com/varsight/varsight/internal/genome"

// Type enumerates variant kinds the engine distinguishes.
type Type uint8

const (
	TypeUnknown Type = iota
	TypeSNV
	TypeMNV
	TypeInsertion
	TypeDeletion
	TypeIndel
	TypeDuplication
	TypeTandemDuplication
	TypeInversion
	TypeCopyNumberGain
	TypeCopyNumberLoss
	TypeTranslocationBreakend
)

// String returns the lowercase name of the variant type.
func (t Type) String() string {
	switch t {
	case TypeSNV:
		return "SNV"
	case TypeMNV:
		return "MNV"
	case TypeInsertion:
		return "insertion"
	case TypeDeletion:
		return "deletion"
	case TypeIndel:
		return "indel"
	case TypeDuplication:
		return "duplication"
	case TypeTandemDuplication:
		return "tandem_duplication"
	case TypeInversion:
		return "inversion"
	case TypeCopyNumberGain:
		return "copy_number_gain"
	case TypeCopyNumberLoss:
		return "copy_number_loss"
	case TypeTranslocationBreakend:
		return "translocation_breakend"
	}
	return "unknown"
}

// IsStructural returns true for structural-variant subtypes.
func (t Type) IsStructural() bool {
	switch t {
	case TypeDuplication, TypeTandemDuplication, TypeInversion,
		TypeCopyNumberGain, TypeCopyNumberLoss, TypeTranslocationBreakend:
		return true
	}
	return false
}

// Breakend describes one end of a structural variant: the partner location
// the rearrangement joins to. Used only to seed gene-fusion candidate search.
type Breakend struct {
	Chrom    genome.Chromosome // partner chromosome
	Position int64             // partner position (1-based)
}

// Variant is a single alternate allele at a position. Start and End are
// 1-based inclusive genomic coordinates; for insertions End is the anchor
// base and the inserted sequence lands just after it.
type Variant struct {
	Start     int64
	End       int64
	Ref       string
	Alt       string
	Type      Type
	Breakends []Breakend

	// Output lists, mutated in place by the annotation engine. Entries are
	// only ever appended, never removed or reordered, so the engine must be
	// invoked exactly once per position.
	TranscriptAnnotations []*TranscriptAnnotation
	RegulatoryAnnotations []*RegulatoryAnnotation
}

// IsInsertion returns true if the variant is a plain insertion.
func (v *Variant) IsInsertion() bool {
	return v.Type == TypeInsertion
}

// Position is one input locus holding zero or more variants.
type Position struct {
	Chrom    genome.Chromosome
	Start    int64
	End      int64
	Variants []*Variant
}

// TranscriptAnnotation is one transcript-level annotation record produced by
// the (external) transcript annotator.
type TranscriptAnnotation struct {
	TranscriptID    string
	TranscriptVer   uint8
	GeneID          string
	GeneName        string
	Consequence     string
	Impact          string
	HGVSc           string
	HGVSp           string
	ProteinPosition int64
	SiftScore       float64
	SiftPrediction  string
	PolyPhenScore   float64
	PolyPhenPred    string
	IsFusion        bool
}

// RegulatoryAnnotation is one regulatory-region annotation record produced by
// the (external) regulatory annotator.
type RegulatoryAnnotation struct {
	RegionID    string
	RegionType  string
	Consequence string
}

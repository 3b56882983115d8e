// Package prediction provides lazily-paged per-chromosome amino-acid
// substitution effect scores for the two supported predictors, SIFT and
// PolyPhen. At most one chromosome's matrix is resident per predictor at any
// time; the Pager swaps matrices on chromosome transitions.
package prediction

import "sort"

// Kind identifies a predictor algorithm.
type Kind uint8

const (
	KindSift     Kind = 1
	KindPolyPhen Kind = 2
)

// String returns the predictor's conventional name.
func (k Kind) String() string {
	switch k {
	case KindSift:
		return "SIFT"
	case KindPolyPhen:
		return "PolyPhen"
	}
	return "unknown"
}

// Entry is one precomputed substitution score: the effect of replacing the
// amino acid at ProteinPos with AltAA. Entries for a transcript are stored
// sorted by (ProteinPos, AltAA) for binary-search lookup.
type Entry struct {
	ProteinPos int32   // 1-based transcript-relative amino acid position
	AltAA      byte    // substituted amino acid, single-letter code
	Score      float32 // predictor score in [0, 1]
}

// Matrix holds one chromosome's scores for one predictor, keyed by transcript
// ID. A nil *Matrix is the canonical empty matrix: lookups simply miss, since
// missing prediction data means "unknown effect", never an error.
type Matrix struct {
	kind        Kind
	chromIndex  uint16
	transcripts map[string][]Entry
}

// NewMatrix builds a matrix from per-transcript entries. Entry slices are
// sorted in place by (ProteinPos, AltAA).
func NewMatrix(kind Kind, chromIndex uint16, transcripts map[string][]Entry) *Matrix {
	for _, entries := range transcripts {
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].ProteinPos != entries[j].ProteinPos {
				return entries[i].ProteinPos < entries[j].ProteinPos
			}
			return entries[i].AltAA < entries[j].AltAA
		})
	}
	return &Matrix{kind: kind, chromIndex: chromIndex, transcripts: transcripts}
}

// Kind returns the predictor this matrix belongs to.
func (m *Matrix) Kind() Kind {
	if m == nil {
		return 0
	}
	return m.kind
}

// ChromIndex returns the dense chromosome index the matrix covers.
func (m *Matrix) ChromIndex() uint16 {
	if m == nil {
		return 0
	}
	return m.chromIndex
}

// Len returns the number of transcripts with score data.
func (m *Matrix) Len() int {
	if m == nil {
		return 0
	}
	return len(m.transcripts)
}

// Score returns the substitution score for (transcript, protein position,
// substituted amino acid). ok is false when no prediction exists, which
// downstream annotation treats as unknown effect.
func (m *Matrix) Score(transcriptID string, proteinPos int32, altAA byte) (score float64, ok bool) {
	if m == nil {
		return 0, false
	}
	entries := m.transcripts[transcriptID]
	i := sort.Search(len(entries), func(i int) bool {
		if entries[i].ProteinPos != proteinPos {
			return entries[i].ProteinPos > proteinPos
		}
		return entries[i].AltAA >= altAA
	})
	if i < len(entries) && entries[i].ProteinPos == proteinPos && entries[i].AltAA == altAA {
		return float64(entries[i].Score), true
	}
	return 0, false
}

// Predict returns the score plus its qualitative class using the predictor's
// published thresholds (SIFT: deleterious below 0.05; PolyPhen: probably
// damaging above 0.908, possibly damaging above 0.446).
func (m *Matrix) Predict(transcriptID string, proteinPos int32, altAA byte) (score float64, class string, ok bool) {
	score, ok = m.Score(transcriptID, proteinPos, altAA)
	if !ok {
		return 0, "", false
	}
	switch m.kind {
	case KindSift:
		if score < 0.05 {
			class = "deleterious"
		} else {
			class = "tolerated"
		}
	case KindPolyPhen:
		switch {
		case score > 0.908:
			class = "probably_damaging"
		case score > 0.446:
			class = "possibly_damaging"
		default:
			class = "benign"
		}
	}
	return score, class, true
}

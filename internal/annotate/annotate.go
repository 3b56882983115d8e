// Package annotate orchestrates variant annotation: for each input position
// it pages prediction matrices for the position's chromosome, finds
// overlapping transcripts and regulatory regions, assembles gene-fusion
// candidates from breakend partners, and hands the work to the external
// annotators, appending their records to the caller-owned variants.
package annotate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/varsight/varsight/internal/cache"
	"github.com/varsight/varsight/internal/prediction"
	"github.com/varsight/varsight/internal/sequence"
	"github.com/varsight/varsight/internal/variant"
)

// MaxRegulatoryVariantLength is the largest variant span that still receives
// regulatory-region annotation. Structural variants above this size are too
// coarse for regulatory semantics and are skipped.
const MaxRegulatoryVariantLength = 50_000

// TranscriptAnnotator computes transcript-level consequences. It is an
// external collaborator: this engine supplies the variant, the overlapping
// transcripts, reference-sequence access, both prediction matrices (possibly
// empty), and the fusion candidate set.
type TranscriptAnnotator interface {
	Annotate(v *variant.Variant, transcripts []*cache.Transcript, seq sequence.Provider,
		sift, polyphen *prediction.Matrix, fusionCandidates []*cache.Transcript) []*variant.TranscriptAnnotation
}

// RegulatoryAnnotator computes the regulatory-region record for one variant
// and one overlapping region.
type RegulatoryAnnotator interface {
	Annotate(v *variant.Variant, region *cache.RegulatoryRegion) *variant.RegulatoryAnnotation
}

// Orchestrator annotates positions against a shared read-only transcript
// cache. It owns a prediction pager and therefore serves exactly one
// sequential caller; run one orchestrator per worker for parallelism.
type Orchestrator struct {
	cache      *cache.TranscriptCache
	pager      *prediction.Pager
	seq        sequence.Provider
	transcript TranscriptAnnotator
	regulatory RegulatoryAnnotator
	logger     *zap.Logger
}

// New creates an orchestrator. The transcript cache may be shared across
// orchestrators; the pager must not be.
func New(c *cache.TranscriptCache, pager *prediction.Pager, seq sequence.Provider,
	transcript TranscriptAnnotator, regulatory RegulatoryAnnotator) *Orchestrator {
	return &Orchestrator{
		cache:      c,
		pager:      pager,
		seq:        seq,
		transcript: transcript,
		regulatory: regulatory,
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for annotation progress and soft-miss messages.
func (o *Orchestrator) SetLogger(l *zap.Logger) {
	o.logger = l
}

// Annotate attaches transcript and regulatory-region annotations to every
// variant on the position, mutating the variants in place. Annotation lists
// are append-only, so call it exactly once per position. All failure modes at
// this layer are soft (empty overlap results, missing prediction data) and
// absorbed locally; fatal configuration errors were already raised when the
// cache and readers were constructed.
func (o *Orchestrator) Annotate(p *variant.Position) {
	if len(p.Variants) == 0 {
		return
	}

	o.pager.EnsureLoaded(p.Chrom.Index)

	o.annotateRegulatory(p)
	o.annotateTranscripts(p)
}

// PreloadPositions is reserved for warming caches ahead of need. It is part
// of the orchestrator's contract surface but has no implementation; callers
// get an explicit failure rather than a silent no-op.
func (o *Orchestrator) PreloadPositions(positions []*variant.Position) error {
	return fmt.Errorf("preloading annotation positions: %w", errors.ErrUnsupported)
}

// Close releases the prediction readers held by the pager.
func (o *Orchestrator) Close() error {
	return o.pager.Close()
}

func (o *Orchestrator) annotateRegulatory(p *variant.Position) {
	regions := o.cache.RegulatoryOverlapping(p.Chrom.Index, p.Start, p.End)
	if len(regions) == 0 {
		return
	}

	for _, v := range p.Variants {
		// Insertions are modeled as landing just after the anchor base, so
		// the effective begin is the variant's end coordinate.
		begin := v.Start
		if v.IsInsertion() {
			begin = v.End
		}

		if v.End-begin+1 > MaxRegulatoryVariantLength {
			continue
		}

		for _, region := range regions {
			if begin > region.End || v.End < region.Start {
				continue
			}
			// An insertion whose anchor sits on the region's last base lands
			// just past the feature, not inside it.
			if v.IsInsertion() && v.End == region.End {
				continue
			}
			if ann := o.regulatory.Annotate(v, region); ann != nil {
				v.RegulatoryAnnotations = append(v.RegulatoryAnnotations, ann)
			}
		}
	}
}

func (o *Orchestrator) annotateTranscripts(p *variant.Position) {
	transcripts := o.cache.TranscriptsOverlapping(p.Chrom.Index, p.Start, p.End)
	if len(transcripts) == 0 {
		return
	}

	for _, v := range p.Variants {
		var fusionCandidates []*cache.Transcript
		if len(v.Breakends) > 0 {
			fusionCandidates = o.fusionCandidates(v.Breakends)
		}

		anns := o.transcript.Annotate(v, transcripts, o.seq, o.pager.Sift(), o.pager.PolyPhen(), fusionCandidates)
		v.TranscriptAnnotations = append(v.TranscriptAnnotations, anns...)
	}
}

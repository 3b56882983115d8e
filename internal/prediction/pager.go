package prediction

import (
	"errors"

	"go.uber.org/zap"

	"github.com/varsight/varsight/internal/genome"
)

// MatrixSource produces one chromosome's matrix on demand. *Reader implements
// it; tests substitute counting fakes.
type MatrixSource interface {
	Kind() Kind
	Load(chromIndex uint16) (*Matrix, error)
}

// Pager holds at most one loaded chromosome's worth of score matrices per
// predictor and reloads them when the observed chromosome changes. It is
// mutable state and must be owned exclusively by one sequential caller;
// parallel annotation uses one pager (and one set of readers) per worker over
// the shared read-only transcript cache.
type Pager struct {
	sift     MatrixSource
	polyphen MatrixSource

	current        uint16
	siftMatrix     *Matrix
	polyphenMatrix *Matrix

	logger *zap.Logger
}

// NewPager creates a pager over the two predictor sources. Either source may
// be nil when that predictor's data is unavailable; lookups then miss, which
// downstream annotation treats as unknown effect. The initial state is Empty.
func NewPager(sift, polyphen MatrixSource) *Pager {
	return &Pager{
		sift:     sift,
		polyphen: polyphen,
		current:  genome.InvalidChromIndex,
		logger:   zap.NewNop(),
	}
}

// SetLogger sets the logger for reload and soft-miss messages.
func (p *Pager) SetLogger(l *zap.Logger) {
	p.logger = l
}

// EnsureLoaded makes the pager's matrices current for the given chromosome.
// A repeated index is a no-op, so chromosome-grouped input costs one reload
// per transition. The unmapped sentinel clears both matrices. A source that
// cannot produce a matrix leaves that predictor empty for the chromosome;
// missing prediction data is not an error.
func (p *Pager) EnsureLoaded(chromIndex uint16) {
	if chromIndex == p.current {
		return
	}

	if chromIndex == genome.InvalidChromIndex {
		p.siftMatrix = nil
		p.polyphenMatrix = nil
		p.current = genome.InvalidChromIndex
		return
	}

	p.logger.Debug("paging prediction matrices",
		zap.Uint16("from", p.current),
		zap.Uint16("to", chromIndex))

	p.siftMatrix = p.load(p.sift, chromIndex)
	p.polyphenMatrix = p.load(p.polyphen, chromIndex)
	p.current = chromIndex
}

func (p *Pager) load(src MatrixSource, chromIndex uint16) *Matrix {
	if src == nil {
		return nil
	}
	m, err := src.Load(chromIndex)
	if err != nil {
		p.logger.Warn("prediction matrix unavailable, annotating without it",
			zap.Stringer("kind", src.Kind()),
			zap.Uint16("chrom_index", chromIndex),
			zap.Error(err))
		return nil
	}
	return m
}

// CurrentChromIndex returns the chromosome the pager is loaded for, or the
// unmapped sentinel in the Empty state.
func (p *Pager) CurrentChromIndex() uint16 {
	return p.current
}

// Sift returns the resident SIFT matrix, possibly nil (empty).
func (p *Pager) Sift() *Matrix {
	return p.siftMatrix
}

// PolyPhen returns the resident PolyPhen matrix, possibly nil (empty).
func (p *Pager) PolyPhen() *Matrix {
	return p.polyphenMatrix
}

// Close releases both sources if they hold resources. Readers stay open for
// the pager's lifetime since matrices are pulled incrementally per chromosome.
func (p *Pager) Close() error {
	var errs []error
	for _, src := range []MatrixSource{p.sift, p.polyphen} {
		if c, ok := src.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

package prediction

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsight/varsight/internal/genome"
)

// countingSource records every Load call so tests can assert reload behavior.
type countingSource struct {
	kind     Kind
	loads    []uint16
	err      error
	closed   bool
	matrices map[uint16]*Matrix
}

func (s *countingSource) Kind() Kind { return s.kind }

func (s *countingSource) Load(chromIndex uint16) (*Matrix, error) {
	s.loads = append(s.loads, chromIndex)
	if s.err != nil {
		return nil, s.err
	}
	if m, ok := s.matrices[chromIndex]; ok {
		return m, nil
	}
	return NewMatrix(s.kind, chromIndex, nil), nil
}

func (s *countingSource) Close() error {
	s.closed = true
	return nil
}

func newTestPager() (*Pager, *countingSource, *countingSource) {
	sift := &countingSource{kind: KindSift}
	polyphen := &countingSource{kind: KindPolyPhen}
	return NewPager(sift, polyphen), sift, polyphen
}

func TestPager_InitialStateIsEmpty(t *testing.T) {
	p, _, _ := newTestPager()
	assert.Equal(t, genome.InvalidChromIndex, p.CurrentChromIndex())
	assert.Nil(t, p.Sift())
	assert.Nil(t, p.PolyPhen())
}

func TestPager_SameChromosomeIsNoOp(t *testing.T) {
	p, sift, polyphen := newTestPager()

	p.EnsureLoaded(3)
	p.EnsureLoaded(3)
	p.EnsureLoaded(3)

	assert.Equal(t, []uint16{3}, sift.loads, "at most one read per predictor for repeated calls")
	assert.Equal(t, []uint16{3}, polyphen.loads)
	assert.Equal(t, uint16(3), p.CurrentChromIndex())
	assert.NotNil(t, p.Sift())
	assert.NotNil(t, p.PolyPhen())
}

func TestPager_SentinelClearsBothCaches(t *testing.T) {
	p, sift, polyphen := newTestPager()

	p.EnsureLoaded(3)
	require.NotNil(t, p.Sift())

	p.EnsureLoaded(genome.InvalidChromIndex)
	assert.Nil(t, p.Sift())
	assert.Nil(t, p.PolyPhen())
	assert.Equal(t, genome.InvalidChromIndex, p.CurrentChromIndex())

	// Clearing performs no reads.
	assert.Equal(t, []uint16{3}, sift.loads)
	assert.Equal(t, []uint16{3}, polyphen.loads)
}

func TestPager_ReloadPerTransition(t *testing.T) {
	p, sift, polyphen := newTestPager()

	// Chromosome 1, then 2, then 1 again: three transitions, three reloads
	// per predictor, since the pager keeps only one resident chromosome.
	p.EnsureLoaded(1)
	p.EnsureLoaded(2)
	p.EnsureLoaded(1)

	assert.Equal(t, []uint16{1, 2, 1}, sift.loads)
	assert.Equal(t, []uint16{1, 2, 1}, polyphen.loads)
	assert.Equal(t, uint16(1), p.CurrentChromIndex())
}

func TestPager_ReplacesWholesale(t *testing.T) {
	sift := &countingSource{kind: KindSift, matrices: map[uint16]*Matrix{
		1: NewMatrix(KindSift, 1, map[string][]Entry{"T1": {{ProteinPos: 1, AltAA: 'A', Score: 0.5}}}),
		2: NewMatrix(KindSift, 2, map[string][]Entry{"T2": {{ProteinPos: 9, AltAA: 'R', Score: 0.9}}}),
	}}
	p := NewPager(sift, &countingSource{kind: KindPolyPhen})

	p.EnsureLoaded(1)
	_, ok := p.Sift().Score("T1", 1, 'A')
	assert.True(t, ok)

	p.EnsureLoaded(2)
	_, ok = p.Sift().Score("T1", 1, 'A')
	assert.False(t, ok, "previous chromosome's matrix was replaced")
	_, ok = p.Sift().Score("T2", 9, 'R')
	assert.True(t, ok)
}

func TestPager_ReadFailureLeavesPredictorEmpty(t *testing.T) {
	sift := &countingSource{kind: KindSift, err: errors.New("truncated block")}
	polyphen := &countingSource{kind: KindPolyPhen}
	p := NewPager(sift, polyphen)

	p.EnsureLoaded(5)

	assert.Nil(t, p.Sift(), "failed predictor stays empty for the chromosome")
	assert.NotNil(t, p.PolyPhen(), "the other predictor still loads")
	assert.Equal(t, uint16(5), p.CurrentChromIndex())
}

func TestPager_NilSourcesAreSoftAbsence(t *testing.T) {
	p := NewPager(nil, nil)
	p.EnsureLoaded(2)
	assert.Nil(t, p.Sift())
	assert.Nil(t, p.PolyPhen())
	assert.NoError(t, p.Close())
}

func TestPager_CloseReleasesSources(t *testing.T) {
	p, sift, polyphen := newTestPager()
	require.NoError(t, p.Close())
	assert.True(t, sift.closed)
	assert.True(t, polyphen.closed)
}

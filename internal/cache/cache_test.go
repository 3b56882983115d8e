package cache

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsight/varsight/internal/genome"
)

func loadTestCache(t *testing.T) *TranscriptCache {
	t.Helper()
	c, err := Read(bytes.NewReader(writeTestCache(t)), fakeProvider{genome.GRCh38})
	require.NoError(t, err)
	return c
}

func TestChromosomeByName(t *testing.T) {
	c := loadTestCache(t)

	chr1 := c.ChromosomeByName("1")
	assert.Equal(t, "1", chr1.Name)
	assert.Equal(t, uint16(0), chr1.Index)

	assert.Equal(t, chr1, c.ChromosomeByName("chr1"), "chr prefix is normalized")

	unknown := c.ChromosomeByName("MT")
	assert.False(t, unknown.IsMapped())
	assert.Equal(t, genome.InvalidChromIndex, unknown.Index)
}

func TestTranscriptsOverlapping(t *testing.T) {
	c := loadTestCache(t)
	chr1 := c.ChromosomeByName("1")

	assert.Empty(t, c.TranscriptsOverlapping(chr1.Index, 9500, 9600), "past all transcripts")

	txs := c.TranscriptsOverlapping(chr1.Index, 1000, 1000)
	require.Len(t, txs, 1)
	assert.Equal(t, "ENST00000369535", txs[0].ID)
	assert.Equal(t, uint8(5), txs[0].Version)
	assert.Equal(t, "VHL", txs[0].GeneName)
	assert.True(t, txs[0].IsProteinCoding())
	assert.True(t, txs[0].IsForwardStrand())

	assert.Len(t, c.TranscriptsOverlapping(chr1.Index, 1, 10000), 2)
}

func TestTranscriptsAt_SentinelAndOutOfRange(t *testing.T) {
	c := loadTestCache(t)

	assert.Empty(t, c.TranscriptsAt(genome.InvalidChromIndex, 1000), "sentinel index yields empty, never panics")
	assert.Empty(t, c.TranscriptsOverlapping(genome.InvalidChromIndex, 1, 10000))
	assert.Empty(t, c.RegulatoryOverlapping(uint16(99), 1, 10000), "index outside the table")
}

func TestRegulatoryOverlapping(t *testing.T) {
	c := loadTestCache(t)
	chr1 := c.ChromosomeByName("1")
	chr2 := c.ChromosomeByName("2")

	regs := c.RegulatoryOverlapping(chr1.Index, 1400, 1600)
	require.Len(t, regs, 1)
	assert.Equal(t, "ENSR00000000001", regs[0].ID)
	assert.Equal(t, "promoter", regs[0].Type)

	assert.Empty(t, c.RegulatoryOverlapping(chr1.Index, 1501, 1600), "just past the region")

	regs = c.RegulatoryOverlapping(chr2.Index, 1, 100)
	require.Len(t, regs, 1)
	assert.Equal(t, "enhancer", regs[0].Type)
}

func TestByChromListings(t *testing.T) {
	c := loadTestCache(t)

	chr1 := c.ChromosomeByName("1")
	txs := c.TranscriptsByChrom(chr1.Index)
	require.Len(t, txs, 2)
	assert.Equal(t, "ENST00000369535", txs[0].ID, "listing is (start, end) ordered")

	assert.Empty(t, c.TranscriptsByChrom(genome.InvalidChromIndex))
	assert.Len(t, c.RegulatoryByChrom(chr1.Index), 1)
}

package sequence

import (
	"bytes"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsight/varsight/internal/genome"
)

const testFasta = `>1 dna:chromosome chromosome:GRCh38:1
ACGTACGTAC
GTACGTACGT
>chr2
TTTTAAAACC
`

func TestLoadFasta(t *testing.T) {
	p, err := LoadFasta(strings.NewReader(testFasta), genome.GRCh38)
	require.NoError(t, err)

	assert.Equal(t, genome.GRCh38, p.Assembly())

	seq, err := p.Substring("1", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq)

	// Spanning the line break in the source file.
	seq, err = p.Substring("1", 9, 4)
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq)

	seq, err = p.Substring("1", 20, 1)
	require.NoError(t, err)
	assert.Equal(t, "T", seq, "last base")
}

func TestLoadFasta_ChrPrefixMatching(t *testing.T) {
	p, err := LoadFasta(strings.NewReader(testFasta), genome.GRCh38)
	require.NoError(t, err)

	seq, err := p.Substring("chr1", 1, 2)
	require.NoError(t, err)
	assert.Equal(t, "AC", seq)

	seq, err = p.Substring("2", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, "TTTT", seq, "record stored as chr2, queried as 2")
}

func TestLoadFasta_Gzipped(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte(testFasta))
	require.NoError(t, err)
	require.NoError(t, gz.Close())

	p, err := LoadFasta(bytes.NewReader(buf.Bytes()), genome.GRCh37)
	require.NoError(t, err)

	seq, err := p.Substring("1", 1, 3)
	require.NoError(t, err)
	assert.Equal(t, "ACG", seq)
}

func TestSubstring_Errors(t *testing.T) {
	p, err := LoadFasta(strings.NewReader(testFasta), genome.GRCh38)
	require.NoError(t, err)

	_, err = p.Substring("X", 1, 1)
	assert.Error(t, err, "unknown chromosome")

	_, err = p.Substring("1", 0, 1)
	assert.Error(t, err, "positions are 1-based")

	_, err = p.Substring("1", 18, 10)
	assert.Error(t, err, "range past chromosome end")
}

func TestLoadFasta_Malformed(t *testing.T) {
	_, err := LoadFasta(strings.NewReader("ACGT\n"), genome.GRCh38)
	assert.Error(t, err, "sequence before header")

	_, err = LoadFasta(strings.NewReader(""), genome.GRCh38)
	assert.Error(t, err, "empty stream")
}

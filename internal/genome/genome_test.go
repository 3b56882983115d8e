package genome

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseAssembly(t *testing.T) {
	assert.Equal(t, GRCh37, ParseAssembly("GRCh37"))
	assert.Equal(t, GRCh37, ParseAssembly("hg19"))
	assert.Equal(t, GRCh38, ParseAssembly("GRCh38"))
	assert.Equal(t, GRCh38, ParseAssembly("hg38"))
	assert.Equal(t, AssemblyUnknown, ParseAssembly("T2T"))
}

func TestAssemblyString(t *testing.T) {
	assert.Equal(t, "GRCh37", GRCh37.String())
	assert.Equal(t, "GRCh38", GRCh38.String())
	assert.Equal(t, "unknown", AssemblyUnknown.String())
}

func TestChromosomeMapping(t *testing.T) {
	c := Chromosome{Name: "1", Index: 0}
	assert.True(t, c.IsMapped())

	assert.False(t, Unmapped.IsMapped())
	assert.Equal(t, InvalidChromIndex, Unmapped.Index)
}

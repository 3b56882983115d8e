package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varsight/varsight/internal/cache"
	"github.com/varsight/varsight/internal/genome"
)

type fakeProvider struct{ assembly genome.Assembly }

func (p fakeProvider) Assembly() genome.Assembly { return p.assembly }

func loadTestCache(t *testing.T) *cache.TranscriptCache {
	t.Helper()

	meta := cache.Metadata{
		Assembly:   genome.GRCh38,
		VepVersion: "115",
		DataSources: []cache.DataSourceVersion{
			{Name: "ensembl", Version: "115"},
		},
	}
	transcripts := []*cache.Transcript{
		{ID: "ENST00000000001", Version: 4, GeneID: "ENSG01", GeneName: "VHL",
			Chrom: genome.Chromosome{Name: "1"}, Start: 1000, End: 5000, Strand: 1,
			Biotype: "protein_coding", CodingStart: 1200, CodingEnd: 4800, IsCanonical: true},
		{ID: "ENST00000000002", Version: 1, GeneID: "ENSG02", GeneName: "TP53",
			Chrom: genome.Chromosome{Name: "1"}, Start: 4000, End: 9000, Strand: -1,
			Biotype: "protein_coding"},
		{ID: "ENST00000000003", Version: 2, GeneID: "ENSG03", GeneName: "KRAS",
			Chrom: genome.Chromosome{Name: "2"}, Start: 2000, End: 7000, Strand: 1,
			Biotype: "protein_coding"},
	}
	regions := []*cache.RegulatoryRegion{
		{ID: "ENSR01", Chrom: genome.Chromosome{Name: "1"}, Start: 500, End: 1500, Type: "promoter"},
	}

	var buf bytes.Buffer
	require.NoError(t, cache.Write(&buf, meta, transcripts, regions))
	c, err := cache.Read(&buf, fakeProvider{assembly: genome.GRCh38})
	require.NoError(t, err)
	return c
}

func TestExportCache(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	c := loadTestCache(t)
	require.NoError(t, s.ExportCache(c))

	n, err := s.TranscriptCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	var assembly, vepVersion string
	require.NoError(t, s.DB().QueryRow(
		`SELECT assembly, vep_version FROM cache_info`).Scan(&assembly, &vepVersion))
	assert.Equal(t, "GRCh38", assembly)
	assert.Equal(t, "115", vepVersion)

	var geneName, chrom string
	var start int64
	require.NoError(t, s.DB().QueryRow(
		`SELECT gene_name, chrom, start_pos FROM transcripts WHERE transcript_id = ?`,
		"ENST00000000003").Scan(&geneName, &chrom, &start))
	assert.Equal(t, "KRAS", geneName)
	assert.Equal(t, "2", chrom)
	assert.Equal(t, int64(2000), start)

	var regions int64
	require.NoError(t, s.DB().QueryRow(
		`SELECT COUNT(*) FROM regulatory_regions`).Scan(&regions))
	assert.Equal(t, int64(1), regions)
}

func TestExportCache_ReplacesPreviousExport(t *testing.T) {
	s, err := Open("")
	require.NoError(t, err)
	defer s.Close()

	c := loadTestCache(t)
	require.NoError(t, s.ExportCache(c))
	require.NoError(t, s.ExportCache(c))

	n, err := s.TranscriptCount()
	require.NoError(t, err)
	assert.Equal(t, int64(3), n, "re-export replaces rather than appends")

	var infoRows int64
	require.NoError(t, s.DB().QueryRow(
		`SELECT COUNT(*) FROM cache_info`).Scan(&infoRows))
	assert.Equal(t, int64(1), infoRows)
}

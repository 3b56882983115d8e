package cache

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/varsight/varsight/internal/binio"
	"github.com/varsight/varsight/internal/genome"
)

// Metadata describes a cache build: everything the header carries besides the
// chromosome table, which is derived from the records being written.
type Metadata struct {
	Assembly    genome.Assembly
	VepVersion  string
	DataSources []DataSourceVersion
}

// Write serializes transcripts and regulatory regions into the binary cache
// format read by Read. The chromosome table is the union of chromosome names
// seen in the records, in first-seen order; each record's chromosome index is
// rewritten to match. Used by the build command and by tests; the full
// production cache pipeline lives outside this module.
func Write(w io.Writer, meta Metadata, transcripts []*Transcript, regions []*RegulatoryRegion) error {
	var names []string
	indexOf := make(map[string]uint16)
	chromOf := func(name string) genome.Chromosome {
		idx, ok := indexOf[name]
		if !ok {
			idx = uint16(len(names))
			indexOf[name] = idx
			names = append(names, name)
		}
		return genome.Chromosome{Name: name, Index: idx}
	}

	for _, t := range transcripts {
		t.Chrom = chromOf(t.Chrom.Name)
	}
	for _, r := range regions {
		r.Chrom = chromOf(r.Chrom.Name)
	}

	body := cacheBody{
		Transcripts: make([][]*Transcript, len(names)),
		Regulatory:  make([][]*RegulatoryRegion, len(names)),
	}
	for _, t := range transcripts {
		body.Transcripts[t.Chrom.Index] = append(body.Transcripts[t.Chrom.Index], t)
	}
	for _, r := range regions {
		body.Regulatory[r.Chrom.Index] = append(body.Regulatory[r.Chrom.Index], r)
	}

	h := &Header{
		Assembly:      meta.Assembly,
		SchemaVersion: SchemaVersion,
		VepVersion:    meta.VepVersion,
		DataSources:   meta.DataSources,
		Chromosomes:   names,
	}

	gz := gzip.NewWriter(w)
	bw := binio.NewWriter(gz)

	if err := writeHeader(bw, h); err != nil {
		gz.Close()
		return fmt.Errorf("write cache header: %w", err)
	}
	if err := gob.NewEncoder(gz).Encode(&body); err != nil {
		gz.Close()
		return fmt.Errorf("encode cache body: %w", err)
	}
	if err := gz.Close(); err != nil {
		return fmt.Errorf("close cache stream: %w", err)
	}
	return nil
}

package cache

import (
	"errors"
	"fmt"

	"github.com/varsight/varsight/internal/binio"
	"github.com/varsight/varsight/internal/genome"
)

// SchemaVersion is the binary cache layout version this engine reads.
// Checked for exact equality before any cache data is used.
const SchemaVersion uint16 = 25

// cacheMagic identifies a varsight transcript cache stream.
var cacheMagic = []byte{'V', 'S', 'T', 'C'}

// Fatal configuration errors raised at cache construction, before any query
// is possible. None of these are retried or recovered.
var (
	ErrBadMagic              = errors.New("not a varsight transcript cache")
	ErrSchemaVersionMismatch = errors.New("cache schema version mismatch")
	ErrAssemblyMismatch      = errors.New("genome assembly mismatch")
)

// DataSourceVersion records one upstream data source the cache was built from.
type DataSourceVersion struct {
	Name    string
	Version string
}

// Header is the transcript cache header block, read and validated before the
// cache body.
type Header struct {
	Assembly      genome.Assembly
	SchemaVersion uint16
	VepVersion    string // custom version tag of the cache build
	DataSources   []DataSourceVersion
	Chromosomes   []string // dense index = position in this table
}

// AssemblyReporter is the slice of the reference-sequence provider the cache
// needs for validation: which assembly its coordinates belong to.
type AssemblyReporter interface {
	Assembly() genome.Assembly
}

// readHeader reads and validates the cache header. provider supplies the
// assembly the caller's reference sequences are defined against.
func readHeader(br *binio.Reader, provider AssemblyReporter) (*Header, error) {
	magic, err := br.Bytes(len(cacheMagic))
	if err != nil {
		return nil, fmt.Errorf("read cache magic: %w", err)
	}
	for i := range cacheMagic {
		if magic[i] != cacheMagic[i] {
			return nil, ErrBadMagic
		}
	}

	h := &Header{}

	if h.SchemaVersion, err = br.Uint16(); err != nil {
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	if h.SchemaVersion != SchemaVersion {
		return nil, fmt.Errorf("%w: transcript cache asserts schema version %d but this annotation engine expects %d",
			ErrSchemaVersionMismatch, h.SchemaVersion, SchemaVersion)
	}

	asm, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read assembly: %w", err)
	}
	h.Assembly = genome.Assembly(asm)
	if h.Assembly != provider.Assembly() {
		return nil, fmt.Errorf("%w: transcript cache asserts %s but reference sequence provider asserts %s",
			ErrAssemblyMismatch, h.Assembly, provider.Assembly())
	}

	if h.VepVersion, err = br.String(); err != nil {
		return nil, fmt.Errorf("read vep version: %w", err)
	}

	n, err := br.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("read data source count: %w", err)
	}
	h.DataSources = make([]DataSourceVersion, n)
	for i := range h.DataSources {
		if h.DataSources[i].Name, err = br.String(); err != nil {
			return nil, fmt.Errorf("read data source name: %w", err)
		}
		if h.DataSources[i].Version, err = br.String(); err != nil {
			return nil, fmt.Errorf("read data source version: %w", err)
		}
	}

	n, err = br.Uvarint()
	if err != nil {
		return nil, fmt.Errorf("read chromosome count: %w", err)
	}
	if n >= uint64(genome.InvalidChromIndex) {
		return nil, fmt.Errorf("chromosome table size %d collides with the unmapped sentinel", n)
	}
	h.Chromosomes = make([]string, n)
	for i := range h.Chromosomes {
		if h.Chromosomes[i], err = br.String(); err != nil {
			return nil, fmt.Errorf("read chromosome name: %w", err)
		}
	}

	return h, nil
}

// writeHeader writes the cache header block.
func writeHeader(bw *binio.Writer, h *Header) error {
	if err := bw.Bytes(cacheMagic); err != nil {
		return err
	}
	if err := bw.Uint16(h.SchemaVersion); err != nil {
		return err
	}
	if err := bw.Byte(byte(h.Assembly)); err != nil {
		return err
	}
	if err := bw.String(h.VepVersion); err != nil {
		return err
	}
	if err := bw.Uvarint(uint64(len(h.DataSources))); err != nil {
		return err
	}
	for _, ds := range h.DataSources {
		if err := bw.String(ds.Name); err != nil {
			return err
		}
		if err := bw.String(ds.Version); err != nil {
			return err
		}
	}
	if err := bw.Uvarint(uint64(len(h.Chromosomes))); err != nil {
		return err
	}
	for _, name := range h.Chromosomes {
		if err := bw.String(name); err != nil {
			return err
		}
	}
	return nil
}

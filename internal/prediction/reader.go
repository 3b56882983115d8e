package prediction

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/varsight/varsight/internal/binio"
	"github.com/varsight/varsight/internal/genome"
)

// SchemaVersion is the prediction file layout version this engine reads.
const SchemaVersion uint16 = 4

// predictionMagic identifies a varsight prediction file.
var predictionMagic = []byte{'V', 'S', 'P', 'D'}

// Fatal configuration errors raised when a prediction reader is opened.
var (
	ErrBadMagic              = errors.New("not a varsight prediction file")
	ErrSchemaVersionMismatch = errors.New("prediction schema version mismatch")
	ErrKindMismatch          = errors.New("prediction kind mismatch")
	ErrAssemblyMismatch      = errors.New("genome assembly mismatch")
)

// AssemblyReporter reports which assembly a component's coordinates belong to.
type AssemblyReporter interface {
	Assembly() genome.Assembly
}

type blockLoc struct {
	offset int64
	length int64
}

// Reader reads per-chromosome score matrices from a prediction file on
// demand. Matrices are pulled one chromosome at a time via the block index in
// the header, so the file stays open for the reader's lifetime and is
// released by Close. A Reader is not safe for concurrent use; each annotation
// worker owns its own.
type Reader struct {
	rs         io.ReadSeeker
	kind       Kind
	assembly   genome.Assembly
	vepVersion string
	blocks     map[uint16]blockLoc
}

// NewReader opens a prediction file, validating its header against the
// requested predictor kind and the caller's reference-sequence provider.
// Mismatches are fatal configuration errors naming both values.
func NewReader(rs io.ReadSeeker, kind Kind, provider AssemblyReporter) (*Reader, error) {
	br := binio.NewReader(rs)

	magic, err := br.Bytes(len(predictionMagic))
	if err != nil {
		return nil, fmt.Errorf("read prediction magic: %w", err)
	}
	if !bytes.Equal(magic, predictionMagic) {
		return nil, ErrBadMagic
	}

	schema, err := br.Uint16()
	if err != nil {
		return nil, fmt.Errorf("read schema version: %w", err)
	}
	if schema != SchemaVersion {
		return nil, fmt.Errorf("%w: prediction file asserts schema version %d but this annotation engine expects %d",
			ErrSchemaVersionMismatch, schema, SchemaVersion)
	}

	kindByte, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read predictor kind: %w", err)
	}
	if Kind(kindByte) != kind {
		return nil, fmt.Errorf("%w: prediction file holds %s data but the caller requested %s",
			ErrKindMismatch, Kind(kindByte), kind)
	}

	asm, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read assembly: %w", err)
	}
	if genome.Assembly(asm) != provider.Assembly() {
		return nil, fmt.Errorf("%w: prediction file asserts %s but reference sequence provider asserts %s",
			ErrAssemblyMismatch, genome.Assembly(asm), provider.Assembly())
	}

	vepVersion, err := br.String()
	if err != nil {
		return nil, fmt.Errorf("read vep version: %w", err)
	}

	count, err := br.Uint16()
	if err != nil {
		return nil, fmt.Errorf("read block index size: %w", err)
	}
	blocks := make(map[uint16]blockLoc, count)
	for i := 0; i < int(count); i++ {
		chromIndex, err := br.Uint16()
		if err != nil {
			return nil, fmt.Errorf("read block chromosome: %w", err)
		}
		offset, err := br.Int64()
		if err != nil {
			return nil, fmt.Errorf("read block offset: %w", err)
		}
		length, err := br.Int64()
		if err != nil {
			return nil, fmt.Errorf("read block length: %w", err)
		}
		blocks[chromIndex] = blockLoc{offset: offset, length: length}
	}

	return &Reader{
		rs:         rs,
		kind:       kind,
		assembly:   genome.Assembly(asm),
		vepVersion: vepVersion,
		blocks:     blocks,
	}, nil
}

// Kind returns the predictor kind the file holds.
func (r *Reader) Kind() Kind { return r.kind }

// VepVersion returns the file's custom version tag.
func (r *Reader) VepVersion() string { return r.vepVersion }

// Chromosomes returns the number of chromosomes with score blocks.
func (r *Reader) Chromosomes() int { return len(r.blocks) }

// Load reads one chromosome's matrix. A chromosome with no block yields
// (nil, nil): absence of prediction data is not an error. Read or decode
// failures are reported so the pager can fall back to an empty matrix.
func (r *Reader) Load(chromIndex uint16) (*Matrix, error) {
	loc, ok := r.blocks[chromIndex]
	if !ok {
		return nil, nil
	}

	if _, err := r.rs.Seek(loc.offset, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s block for chromosome %d: %w", r.kind, chromIndex, err)
	}

	gz, err := gzip.NewReader(io.LimitReader(r.rs, loc.length))
	if err != nil {
		return nil, fmt.Errorf("open %s block for chromosome %d: %w", r.kind, chromIndex, err)
	}
	defer gz.Close()

	var transcripts map[string][]Entry
	if err := gob.NewDecoder(gz).Decode(&transcripts); err != nil {
		return nil, fmt.Errorf("decode %s block for chromosome %d: %w", r.kind, chromIndex, err)
	}

	return NewMatrix(r.kind, chromIndex, transcripts), nil
}

// Close releases the underlying file if it is closable.
func (r *Reader) Close() error {
	if c, ok := r.rs.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

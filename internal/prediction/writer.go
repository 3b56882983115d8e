package prediction

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"sort"

	"github.com/klauspost/compress/gzip"

	"github.com/varsight/varsight/internal/binio"
	"github.com/varsight/varsight/internal/genome"
)

// Write serializes per-chromosome score matrices into the prediction file
// format read by Reader. Blocks are encoded up front so the header's block
// index can carry absolute offsets without seeking; used by the build command
// and by tests.
func Write(w io.Writer, kind Kind, assembly genome.Assembly, vepVersion string, matrices map[uint16]map[string][]Entry) error {
	chroms := make([]uint16, 0, len(matrices))
	for chromIndex := range matrices {
		chroms = append(chroms, chromIndex)
	}
	sort.Slice(chroms, func(i, j int) bool { return chroms[i] < chroms[j] })

	blocks := make([][]byte, len(chroms))
	for i, chromIndex := range chroms {
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if err := gob.NewEncoder(gz).Encode(matrices[chromIndex]); err != nil {
			return fmt.Errorf("encode %s block for chromosome %d: %w", kind, chromIndex, err)
		}
		if err := gz.Close(); err != nil {
			return fmt.Errorf("close %s block for chromosome %d: %w", kind, chromIndex, err)
		}
		blocks[i] = buf.Bytes()
	}

	// Header is fixed-size except for the version tag, so render it to a
	// buffer first to learn where the block region starts.
	var head bytes.Buffer
	hw := binio.NewWriter(&head)
	if err := hw.Bytes(predictionMagic); err != nil {
		return err
	}
	if err := hw.Uint16(SchemaVersion); err != nil {
		return err
	}
	if err := hw.Byte(byte(kind)); err != nil {
		return err
	}
	if err := hw.Byte(byte(assembly)); err != nil {
		return err
	}
	if err := hw.String(vepVersion); err != nil {
		return err
	}

	const indexEntrySize = 2 + 8 + 8
	offset := int64(head.Len()) + 2 + int64(len(chroms))*indexEntrySize

	if err := hw.Uint16(uint16(len(chroms))); err != nil {
		return err
	}
	for i, chromIndex := range chroms {
		if err := hw.Uint16(chromIndex); err != nil {
			return err
		}
		if err := hw.Int64(offset); err != nil {
			return err
		}
		if err := hw.Int64(int64(len(blocks[i]))); err != nil {
			return err
		}
		offset += int64(len(blocks[i]))
	}

	if _, err := w.Write(head.Bytes()); err != nil {
		return fmt.Errorf("write prediction header: %w", err)
	}
	for i, block := range blocks {
		if _, err := w.Write(block); err != nil {
			return fmt.Errorf("write %s block for chromosome %d: %w", kind, chroms[i], err)
		}
	}
	return nil
}

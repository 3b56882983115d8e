package cache

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"

	"github.com/varsight/varsight/internal/binio"
)

// cacheBody is the gob-encoded payload following the header: chromosome-
// indexed lists of transcripts and regulatory regions. The outer slices are
// indexed by the dense chromosome index from the header's chromosome table.
type cacheBody struct {
	Transcripts [][]*Transcript
	Regulatory  [][]*RegulatoryRegion
}

// Read deserializes a transcript cache from a gzip-compressed byte stream.
// The header is validated (schema version, then assembly against the caller's
// reference-sequence provider) before any body data is decoded; validation
// failures are fatal and carry both mismatched values. The stream is fully
// consumed within this call and never retained by the returned cache, so
// callers may close it as soon as Read returns.
func Read(r io.Reader, provider AssemblyReporter) (*TranscriptCache, error) {
	gz, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open cache stream: %w", err)
	}
	defer gz.Close()

	br := binio.NewReader(gz)

	h, err := readHeader(br, provider)
	if err != nil {
		return nil, err
	}

	var body cacheBody
	if err := gob.NewDecoder(br).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode cache body: %w", err)
	}
	if len(body.Transcripts) > len(h.Chromosomes) || len(body.Regulatory) > len(h.Chromosomes) {
		return nil, fmt.Errorf("cache body references %d chromosomes but the header table has %d",
			max(len(body.Transcripts), len(body.Regulatory)), len(h.Chromosomes))
	}

	return newTranscriptCache(h, body.Transcripts, body.Regulatory), nil
}

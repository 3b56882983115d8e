package sequence

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/varsight/varsight/internal/genome"
)

// FastaProvider is an in-memory reference-sequence provider loaded from a
// FASTA stream. Suitable for targeted panels and tests; whole-genome use
// belongs to an indexed provider outside this module.
type FastaProvider struct {
	assembly genome.Assembly
	seqs     map[string]string
}

// LoadFasta reads a FASTA stream (plain or gzipped) into memory. Record names
// are the first whitespace-delimited token of each header line, with any
// "chr" prefix preserved as written.
func LoadFasta(r io.Reader, assembly genome.Assembly) (*FastaProvider, error) {
	br := bufio.NewReader(r)

	// Peek for a gzip frame so .fa and .fa.gz both work.
	head, err := br.Peek(2)
	if err == nil && head[0] == 0x1f && head[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("open gzipped fasta: %w", err)
		}
		defer gz.Close()
		return parseFasta(bufio.NewReader(gz), assembly)
	}

	return parseFasta(br, assembly)
}

func parseFasta(br *bufio.Reader, assembly genome.Assembly) (*FastaProvider, error) {
	p := &FastaProvider{assembly: assembly, seqs: make(map[string]string)}

	var name string
	var sb strings.Builder
	flush := func() {
		if name != "" {
			p.seqs[name] = sb.String()
		}
		sb.Reset()
	}

	scanner := bufio.NewScanner(br)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<24)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		if line[0] == '>' {
			flush()
			name = strings.Fields(line[1:])[0]
			continue
		}
		if name == "" {
			return nil, fmt.Errorf("fasta sequence data before first header")
		}
		sb.WriteString(strings.ToUpper(strings.TrimSpace(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read fasta: %w", err)
	}
	flush()

	if len(p.seqs) == 0 {
		return nil, fmt.Errorf("fasta stream contains no sequences")
	}
	return p, nil
}

// Assembly reports the build the provider was loaded for.
func (p *FastaProvider) Assembly() genome.Assembly {
	return p.assembly
}

// Substring returns length bases at the 1-based position start on chrom.
// Names are matched with and without the "chr" prefix.
func (p *FastaProvider) Substring(chrom string, start, length int64) (string, error) {
	seq, ok := p.seqs[chrom]
	if !ok {
		seq, ok = p.seqs[strings.TrimPrefix(chrom, "chr")]
	}
	if !ok {
		seq, ok = p.seqs["chr"+chrom]
	}
	if !ok {
		return "", fmt.Errorf("chromosome %q not in reference", chrom)
	}
	if start < 1 || length < 0 || start-1+length > int64(len(seq)) {
		return "", fmt.Errorf("range %d+%d outside chromosome %q (%d bases)", start, length, chrom, len(seq))
	}
	return seq[start-1 : start-1+length], nil
}

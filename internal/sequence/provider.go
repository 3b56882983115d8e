// Package sequence provides reference-sequence access for annotation. The
// engine itself never reads bases; it threads a Provider through to the
// external transcript annotator and uses its assembly for cache validation.
package sequence

import "github.com/varsight/varsight/internal/genome"

// Provider serves reference bases for one genome assembly.
type Provider interface {
	// Assembly reports the build the provider's coordinates belong to.
	Assembly() genome.Assembly
	// Substring returns length bases starting at the 1-based position start
	// on the named chromosome.
	Substring(chrom string, start, length int64) (string, error)
}

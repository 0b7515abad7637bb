// Package ffgraph builds FFmpeg filter graphs and argument lists for
// edit-graph exports: per-segment trim/concat chains, bounded atempo
// chains for arbitrary speed factors, webcam overlay and audio mixing.
// Everything in this package is pure text generation; identical inputs
// always produce identical output.
package ffgraph

import (
	"fmt"
	"strings"
)

// AtempoChain decomposes an arbitrary speed factor into a chain of
// atempo stages. The atempo filter only accepts factors in [0.5, 2.0],
// so larger and smaller factors are split across multiple stages whose
// product equals the requested scale. A scale within 1% of 1.0 returns
// the identity filter.
func AtempoChain(timeScale float64) string {
	if timeScale > 0.99 && timeScale < 1.01 {
		return "anull"
	}

	remaining := timeScale
	var filters []string

	for remaining > 2.0 {
		filters = append(filters, "atempo=2.0")
		remaining /= 2.0
	}
	for remaining < 0.5 {
		filters = append(filters, "atempo=0.5")
		remaining *= 2.0
	}

	if remaining < 0.99 || remaining > 1.01 {
		filters = append(filters, fmt.Sprintf("atempo=%.4f", remaining))
	}

	if len(filters) == 0 {
		return "anull"
	}
	return strings.Join(filters, ",")
}

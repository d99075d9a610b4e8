package mining

import (
	"time"

	"github.com/spacemeshos/nadir/search"
)

// Benchmark returns the hashes per second the search achieves on the
// current machine with the given fan-out, measured over a single wave.
func Benchmark(groups, lanesPerGroup uint32) (float64, error) {
	results := make([]search.Candidate, groups)

	start := time.Now()
	if err := search.Run(0, groups, lanesPerGroup, results); err != nil {
		return 0, err
	}
	return Rate(1, groups, lanesPerGroup, time.Since(start)), nil
}

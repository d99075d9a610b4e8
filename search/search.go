// Package search runs the exhaustive per-wave scan: many independent
// lanes, grouped, each group reduced to a single best candidate.
package search

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/spacemeshos/nadir/alphabet"
	"github.com/spacemeshos/nadir/digest"
	"github.com/spacemeshos/nadir/engine"
)

// TailsPerLane is the number of tail combinations a single lane scans:
// one per combination of the 3 free tail bytes.
const TailsPerLane = alphabet.NumSymbols * alphabet.NumSymbols * alphabet.NumSymbols

// Candidate pairs a nonce with the digest the search engine computed
// for it. The digest is reported as-is and must be re-verified by the
// caller before it is trusted.
type Candidate struct {
	Wave   uint32
	Lane   uint32
	Tail   uint32
	Digest digest.Digest
}

// Better returns the smaller of a and b by digest order. It is the
// reduction operator for group and host minima: associative and
// commutative, with ties resolving to the first operand.
func Better(a, b Candidate) Candidate {
	if b.Digest.Less(a.Digest) {
		return b
	}
	return a
}

// Run executes one wave: groups*lanesPerGroup lanes, each exhaustively
// scanning its TailsPerLane combinations, with every group reduced to
// one winning candidate written to its slot in results.
//
// A wave is a run-to-completion unit: once dispatched it cannot be
// interrupted, and results must not be read before Run returns.
func Run(wave, groups, lanesPerGroup uint32, results []Candidate) error {
	if len(results) != int(groups) {
		return fmt.Errorf("result buffer holds %d slots, want one per group (%d)", len(results), groups)
	}
	if fanout := uint64(groups) * uint64(lanesPerGroup); fanout > alphabet.NumCodes {
		return fmt.Errorf("fan-out %d exceeds the lane id space %d", fanout, alphabet.NumCodes)
	}
	tag, err := alphabet.EncodeWord(wave)
	if err != nil {
		return fmt.Errorf("encoding wave id: %w", err)
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())
	for g := uint32(0); g < groups; g++ {
		g := g
		eg.Go(func() error {
			best := Candidate{Digest: digest.Worst()}
			for pos := uint32(0); pos < lanesPerGroup; pos++ {
				cand, err := scanLane(wave, g*lanesPerGroup+pos, tag)
				if err != nil {
					return err
				}
				best = Better(best, cand)
			}
			results[g] = best
			return nil
		})
	}
	return eg.Wait()
}

// scanLane tries every tail combination for one lane, keeping the
// candidate with the smallest digest. The running best is private to
// the lane until the group reduction.
func scanLane(wave, lane, tag uint32) (Candidate, error) {
	laneCode, err := alphabet.EncodeWord(lane)
	if err != nil {
		return Candidate{}, fmt.Errorf("encoding lane id: %w", err)
	}

	best := Candidate{Wave: wave, Lane: lane, Digest: digest.Worst()}
	for i := uint32(0); i < alphabet.NumSymbols; i++ {
		b0 := alphabet.Symbol(i)
		for j := uint32(0); j < alphabet.NumSymbols; j++ {
			b1 := alphabet.Symbol(j)
			for l := uint32(0); l < alphabet.NumSymbols; l++ {
				tail := engine.NewTail(b0, b1, alphabet.Symbol(l))
				d := engine.Compress(tag, laneCode, tail)
				if d.Less(best.Digest) {
					best.Tail = tail
					best.Digest = d
				}
			}
		}
	}
	return best, nil
}

// Package mining drives the search: it dispatches waves in batches,
// re-verifies the reported group winners and maintains the global best.
package mining

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/spacemeshos/nadir/alphabet"
	"github.com/spacemeshos/nadir/config"
	"github.com/spacemeshos/nadir/digest"
	"github.com/spacemeshos/nadir/engine"
	"github.com/spacemeshos/nadir/search"
)

// Miner owns the global best candidate and the batch loop around the
// parallel search. It is not safe for concurrent use.
type Miner struct {
	cfg    config.Config
	logger *zap.Logger
	out    io.Writer

	onNewBest func(search.Candidate)
	runWave   func(wave, groups, lanesPerGroup uint32, results []search.Candidate) error

	best  search.Candidate
	found bool
}

// Option sets an option for a Miner instance.
type Option func(*Miner)

// WithLogger sets the logger for diagnostics. Search output itself goes
// to the output writer, not the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Miner) {
		m.logger = logger
	}
}

// WithOutput sets the writer progress lines and best reports are
// written to. Defaults to stdout.
func WithOutput(out io.Writer) Option {
	return func(m *Miner) {
		m.out = out
	}
}

// WithNewBestHandler registers a callback invoked whenever the global
// best improves, after the candidate has been re-verified.
func WithNewBestHandler(handler func(search.Candidate)) Option {
	return func(m *Miner) {
		m.onNewBest = handler
	}
}

func NewMiner(cfg config.Config, opts ...Option) (*Miner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Miner{
		cfg:     cfg,
		logger:  zap.NewNop(),
		out:     os.Stdout,
		runWave: search.Run,
		best:    search.Candidate{Digest: digest.Worst()},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Best returns the current global best and whether one has been found.
func (m *Miner) Best() (search.Candidate, bool) {
	return m.best, m.found
}

// Run executes batches until the configured batch count is reached or
// ctx is cancelled. Cancellation is observed at batch boundaries only;
// a dispatched wave always runs to completion. On every termination
// path the final best is re-emitted. Any dispatch failure is fatal and
// returned as an error.
func (m *Miner) Run(ctx context.Context) error {
	results := make([]search.Candidate, m.cfg.Groups)
	wave := m.cfg.StartWave

	for batch := uint32(0); m.cfg.NumBatches == 0 || batch < m.cfg.NumBatches; batch++ {
		select {
		case <-ctx.Done():
			m.logger.Info("interrupted, stopping at batch boundary", zap.Uint32("wave", wave))
			m.reportFinal()
			return nil
		default:
		}

		first := wave
		var busy time.Duration
		for i := uint32(0); i < m.cfg.WavesPerBatch; i++ {
			start := time.Now()
			if err := m.runWave(wave, m.cfg.Groups, m.cfg.LanesPerGroup, results); err != nil {
				return fmt.Errorf("dispatching wave %d: %w", wave, err)
			}
			busy += time.Since(start)

			// The result buffer is reused across the batch, so any
			// wave not inspected here is lost. Verification is kept
			// outside the measured dispatch time.
			if !m.cfg.LastWaveOnly || i == m.cfg.WavesPerBatch-1 {
				if err := m.verify(results); err != nil {
					return err
				}
			}
			wave++
		}

		rate := Rate(m.cfg.WavesPerBatch, m.cfg.Groups, m.cfg.LanesPerGroup, busy)
		fmt.Fprintf(m.out, "waves %d-%d: %.3f GH/s in %d ms\n", first, wave-1, rate/1e9, busy.Milliseconds())
	}

	m.reportFinal()
	return nil
}

// verify recomputes each group winner's digest from its nonce alone,
// never trusting the digest the search engine reported, and folds the
// verified candidates into the global best.
func (m *Miner) verify(results []search.Candidate) error {
	for _, c := range results {
		tag, err := alphabet.EncodeWord(c.Wave)
		if err != nil {
			return fmt.Errorf("verifying candidate: %w", err)
		}
		lane, err := alphabet.EncodeWord(c.Lane)
		if err != nil {
			return fmt.Errorf("verifying candidate: %w", err)
		}

		verified := engine.Reference(tag, lane, c.Tail)
		if verified != c.Digest {
			m.logger.Warn("digest drift between search and reference engines",
				zap.Uint32("wave", c.Wave),
				zap.Uint32("lane", c.Lane),
				zap.String("reported", c.Digest.String()),
				zap.String("verified", verified.String()),
			)
		}
		c.Digest = verified

		if c.Digest.Less(m.best.Digest) {
			m.best = c
			m.found = true
			m.report(c)
			if m.onNewBest != nil {
				m.onNewBest(c)
			}
		}
	}
	return nil
}

// report emits the two-line best report: the full reconstructed message
// and its digest.
func (m *Miner) report(c search.Candidate) {
	tag, _ := alphabet.EncodeWord(c.Wave)
	lane, _ := alphabet.EncodeWord(c.Lane)
	msg := engine.Message(tag, lane, c.Tail)
	fmt.Fprintf(m.out, "%s\n%s\n", msg[:], c.Digest)
}

func (m *Miner) reportFinal() {
	if !m.found {
		return
	}
	fmt.Fprintln(m.out, "final best:")
	m.report(m.best)
}

// Rate returns the achieved hashes per second for the given fan-out and
// elapsed time.
func Rate(waves, groups, lanesPerGroup uint32, elapsed time.Duration) float64 {
	hashes := float64(waves) * float64(groups) * float64(lanesPerGroup) * float64(search.TailsPerLane)
	return hashes / elapsed.Seconds()
}

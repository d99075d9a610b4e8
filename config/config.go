// Package config holds the search parameters and their validation.
package config

import (
	"fmt"

	"github.com/spacemeshos/nadir/alphabet"
)

const (
	DefaultGroups        = 32
	DefaultLanesPerGroup = 16
	DefaultWavesPerBatch = 4
)

type Config struct {
	// Groups is the number of lane groups per wave. Each group reports
	// one candidate per wave.
	Groups uint32 `mapstructure:"groups"`

	// LanesPerGroup is the number of lanes reduced by a single group.
	LanesPerGroup uint32 `mapstructure:"lanes-per-group"`

	// WavesPerBatch is the number of waves measured as one throughput
	// unit.
	WavesPerBatch uint32 `mapstructure:"waves-per-batch"`

	// NumBatches bounds the run. Zero means run until interrupted.
	NumBatches uint32 `mapstructure:"batches"`

	// StartWave is the wave id the run begins at, allowing a prior
	// run's sequence to be resumed without re-scanning covered waves.
	StartWave uint32 `mapstructure:"start-wave"`

	// LastWaveOnly reads back and verifies only the final wave of each
	// batch; intermediate waves are computed but never inspected. By
	// default every wave's group winners are inspected.
	LastWaveOnly bool `mapstructure:"last-wave-only"`
}

func DefaultConfig() Config {
	return Config{
		Groups:        DefaultGroups,
		LanesPerGroup: DefaultLanesPerGroup,
		WavesPerBatch: DefaultWavesPerBatch,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Groups == 0 {
		return fmt.Errorf("invalid `Groups`; expected: > 0, given: %d", cfg.Groups)
	}

	if cfg.LanesPerGroup == 0 {
		return fmt.Errorf("invalid `LanesPerGroup`; expected: > 0, given: %d", cfg.LanesPerGroup)
	}

	if fanout := uint64(cfg.Groups) * uint64(cfg.LanesPerGroup); fanout > alphabet.NumCodes {
		return fmt.Errorf("invalid fan-out; expected: `Groups` * `LanesPerGroup` <= %d, given: %d",
			alphabet.NumCodes, fanout)
	}

	if cfg.WavesPerBatch == 0 {
		return fmt.Errorf("invalid `WavesPerBatch`; expected: > 0, given: %d", cfg.WavesPerBatch)
	}

	if cfg.StartWave >= alphabet.NumCodes {
		return fmt.Errorf("invalid `StartWave`; expected: < %d, given: %d", alphabet.NumCodes, cfg.StartWave)
	}

	return nil
}

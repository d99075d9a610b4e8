package mining

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBenchmark(t *testing.T) {
	rate, err := Benchmark(1, 1)
	require.NoError(t, err)
	require.Greater(t, rate, 0.0)
}

func TestBenchmarkInvalidFanout(t *testing.T) {
	_, err := Benchmark(3844, 3845)
	require.Error(t, err)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/spacemeshos/nadir/config"
	"github.com/spacemeshos/nadir/mining"
	"github.com/spacemeshos/nadir/search"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "nadir [start-wave]",
	Short: "search for the suffix producing the smallest sha256 digest",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMiner,
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "measure search throughput for a range of fan-outs",
	Args:  cobra.NoArgs,
	RunE:  runBench,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.Uint32("groups", config.DefaultGroups, "number of lane groups per wave")
	flags.Uint32("lanes-per-group", config.DefaultLanesPerGroup, "number of lanes per group")
	flags.Uint32("waves-per-batch", config.DefaultWavesPerBatch, "number of waves per throughput batch")
	flags.Uint32("batches", 0, "number of batches to run (0 = until interrupted)")
	flags.Bool("last-wave-only", false, "inspect only the last wave of each batch")
	flags.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	if err := viper.BindPFlags(flags); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("nadir")
	viper.AutomaticEnv()

	rootCmd.AddCommand(benchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(args []string) (config.Config, error) {
	cfg := config.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if len(args) == 1 {
		start, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return cfg, fmt.Errorf("invalid start wave %q: %w", args[0], err)
		}
		cfg.StartWave = uint32(start)
	}

	return cfg, cfg.Validate()
}

func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	zapCfg := zap.Config{
		Level:    zap.NewAtomicLevelAt(level),
		Encoding: "console",
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "T",
			LevelKey:       "L",
			NameKey:        "N",
			MessageKey:     "M",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.CapitalLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
		},
		// Search output owns stdout; diagnostics go to stderr.
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}
	return zapCfg.Build()
}

func runMiner(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	miner, err := mining.NewMiner(cfg, mining.WithLogger(logger))
	if err != nil {
		return err
	}

	logger.Info("starting search",
		zap.Uint32("groups", cfg.Groups),
		zap.Uint32("lanesPerGroup", cfg.LanesPerGroup),
		zap.Uint32("wavesPerBatch", cfg.WavesPerBatch),
		zap.Uint32("startWave", cfg.StartWave),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := miner.Run(ctx); err != nil {
		logger.Error("search failed", zap.Error(err))
		return err
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cases := []struct {
		groups        uint32
		lanesPerGroup uint32
	}{
		{1, 1},
		{4, 4},
		{16, 8},
		{32, 16},
	}

	data := make([][]string, 0, len(cases))
	for _, c := range cases {
		rate, err := mining.Benchmark(c.groups, c.lanesPerGroup)
		if err != nil {
			return fmt.Errorf("benchmarking %dx%d: %w", c.groups, c.lanesPerGroup, err)
		}
		hashes := uint64(c.groups) * uint64(c.lanesPerGroup) * search.TailsPerLane
		data = append(data, []string{
			strconv.FormatUint(uint64(c.groups), 10),
			strconv.FormatUint(uint64(c.lanesPerGroup), 10),
			strconv.FormatUint(hashes, 10),
			fmt.Sprintf("%.4f", rate/1e9),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"groups", "lanes/group", "hashes/wave", "GH/s"})
	table.SetBorder(true)
	table.AppendBulk(data)
	table.Render()
	return nil
}

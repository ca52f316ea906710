package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lvdpp/dpp"
	"github.com/katalvlaran/lvdpp/internal/config"
	"github.com/katalvlaran/lvdpp/internal/logging"
)

type flags struct {
	configPath string
	mode       string
	size       int
	seed       uint64
	draws      int
	workers    int
	logLevel   string
	logFormat  string
	output     string
	check      bool
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:          "dppsample",
		Short:        "Draw exact samples from a projection DPP",
		Long:         "dppsample loads a kernel from a YAML job file and draws independent samples with the GS, Chol or Schur sampler.",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, &f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.configPath, "config", "c", "job.yaml", "path to the YAML job file")
	fl.StringVar(&f.mode, "mode", "", "sampler: GS, Chol or Schur (overrides the job file)")
	fl.IntVar(&f.size, "size", 0, "sample size, 0 means the kernel rank (overrides the job file)")
	fl.Uint64Var(&f.seed, "seed", 0, "base seed (overrides the job file)")
	fl.IntVarP(&f.draws, "draws", "n", 0, "number of samples (overrides the job file)")
	fl.IntVar(&f.workers, "workers", 0, "parallel workers, 0 means GOMAXPROCS")
	fl.StringVar(&f.logLevel, "log-level", "warn", "debug, info, warn or error")
	fl.StringVar(&f.logFormat, "log-format", "text", "text or json")
	fl.StringVarP(&f.output, "output", "o", "text", "text or json")
	fl.BoolVar(&f.check, "check", false, "verify the kernel is a projection before sampling")
	return cmd
}

func run(cmd *cobra.Command, f *flags) error {
	logger, err := logging.New(cmd.ErrOrStderr(), f.logLevel, f.logFormat)
	if err != nil {
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	fl := cmd.Flags()
	if fl.Changed("mode") {
		cfg.Sampling.Mode = f.mode
	}
	if fl.Changed("size") {
		cfg.Sampling.Size = f.size
	}
	if fl.Changed("seed") {
		cfg.Sampling.Seed = f.seed
	}
	if fl.Changed("draws") {
		cfg.Sampling.Draws = f.draws
	}
	if fl.Changed("workers") {
		cfg.Sampling.Workers = f.workers
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	opts := append(cfg.Options(), dpp.WithLogger(logger))
	logger.Info("sampling",
		"config", f.configPath,
		"type", cfg.KernelType().String(),
		"mode", cfg.Sampling.Mode,
		"draws", cfg.Sampling.Draws,
		"complex", cfg.Complex())

	var samples [][]int
	if cfg.Complex() {
		p, err := cfg.ComplexDPP()
		if err != nil {
			return err
		}
		samples, err = draw(cmd, p, cfg.Sampling.Draws, f.check, opts)
		if err != nil {
			return err
		}
	} else {
		p, err := cfg.RealDPP()
		if err != nil {
			return err
		}
		samples, err = draw(cmd, p, cfg.Sampling.Draws, f.check, opts)
		if err != nil {
			return err
		}
	}
	return write(cmd.OutOrStdout(), f.output, samples)
}

func draw[T dpp.Field](cmd *cobra.Command, p *dpp.ProjectionDPP[T], draws int, check bool, opts []dpp.Option) ([][]int, error) {
	if check {
		k, err := p.Kernel()
		if err != nil {
			return nil, err
		}
		if err = dpp.CheckProjection(k, nil); err != nil {
			return nil, err
		}
	}
	return p.SampleMany(cmd.Context(), draws, opts...)
}

func write(w io.Writer, format string, samples [][]int) error {
	switch strings.ToLower(format) {
	case "json":
		enc := json.NewEncoder(w)
		return enc.Encode(samples)
	case "", "text":
		var b strings.Builder
		for _, s := range samples {
			b.Reset()
			for i, idx := range s {
				if i > 0 {
					b.WriteByte(' ')
				}
				b.WriteString(strconv.Itoa(idx))
			}
			if _, err := fmt.Fprintln(w, b.String()); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("dppsample: unknown output format %q", format)
	}
}

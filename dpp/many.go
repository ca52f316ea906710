package dpp

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// SampleMany draws `draws` independent samples of the projection DPP.
//
// Every draw owns a fresh PCG source seeded from drawSeeds (derived from
// Options.Seed, or consumed in order from Options.Source) and freshly
// allocated sampler state, so draws run concurrently on at most
// Options.Workers goroutines (GOMAXPROCS when <= 0) and the result is
// identical for any worker count.
// result[i] is the i-th draw. The step hook, if any, is called concurrently.
//
// Errors: ErrInvalidDraws, any Sample error (first one wins), ctx.Err().
func (p *ProjectionDPP[T]) SampleMany(ctx context.Context, draws int, opts ...Option) ([][]int, error) {
	if draws <= 0 {
		return nil, dppErrorf("SampleMany", ErrInvalidDraws)
	}
	k, err := p.Kernel()
	if err != nil {
		return nil, err
	}
	o := buildOptions(opts)
	seeds := drawSeeds(&o, draws)

	out := make([][]int, draws)
	g, gctx := errgroup.WithContext(ctx)
	workers := o.workers()
	g.SetLimit(workers)
	for i := 0; i < draws; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local := o
			local.Source = sourceFromSeed(seeds[i])
			s, err := sampleWith(k, p.kind, &local)
			if err != nil {
				return err
			}
			out[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, dppErrorf("SampleMany", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, dppErrorf("SampleMany", err)
	}

	o.Logger.Debug("dpp: batch drawn", "draws", draws, "workers", workers)

	return out, nil
}

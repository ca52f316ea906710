// Package dpp defines sampling modes, kernel representations and the options
// shared by every projection sampler.
package dpp

import (
	"log/slog"
	"math/rand/v2"
	"runtime"
)

// Mode names one concrete projection sampler.
type Mode string

const (
	// ModeGS selects Gram–Schmidt residual tracking (default for Hermitian kernels).
	ModeGS Mode = "GS"

	// ModeChol selects the pivoted incremental Cholesky update.
	ModeChol Mode = "Chol"

	// ModeSchur selects Schur complements maintained with Woodbury updates.
	// It is the only mode defined for non-Hermitian kernels.
	ModeSchur Mode = "Schur"
)

// KernelType tells whether a kernel was supplied as the correlation kernel K
// or as the likelihood kernel L of a k-DPP.
type KernelType int

const (
	// Correlation means the matrix is the marginal kernel K; size defaults to rank(K).
	Correlation KernelType = iota

	// Likelihood means the matrix is an orthogonal projection L; sampling
	// k-DPP(L) requires an explicit size.
	Likelihood
)

// String implements fmt.Stringer.
func (t KernelType) String() string {
	switch t {
	case Correlation:
		return "correlation"
	case Likelihood:
		return "likelihood"
	default:
		return "unknown"
	}
}

// Step describes the state of a sampler right before its stochastic choice.
//
// Fields:
//
//	Iter     — 0-based conditioning step.
//	Mass     — sum of the remaining residual weights; equals rank−Iter for a projection.
//	Selected — index chosen at this step (ground-set index).
type Step struct {
	Iter     int
	Mass     float64
	Selected int
}

// StepHook observes every conditioning step. It runs synchronously on the
// sampling goroutine and must not retain the Step beyond the call.
type StepHook func(Step)

// Options configures a sampling call. Use DefaultOptions() and Option setters.
//
// Fields:
//
//	Size    — sample size; 0 means rank(K) (mandatory for Likelihood kernels).
//	Mode    — requested sampler; resolved against Hermitian-ness by ResolveMode.
//	Seed    — seed for the default PCG source; 0 ⇒ defaultRNGSeed.
//	Source  — explicit random source; overrides Seed when non-nil.
//	Logger  — structured logger; nil discards.
//	Hook    — optional per-step observer.
//	Workers — goroutine limit for SampleMany; <=0 ⇒ GOMAXPROCS.
type Options struct {
	Size    int
	Mode    Mode
	Seed    uint64
	Source  rand.Source
	Logger  *slog.Logger
	Hook    StepHook
	Workers int
}

// Option configures Options.
type Option func(*Options)

// DefaultOptions returns the baseline configuration:
//
//	– Size    = 0 (rank of the kernel)
//	– Mode    = ModeGS (resolved to ModeSchur for non-Hermitian kernels)
//	– Seed    = 0 (deterministic default stream)
//	– Logger  = discard
//	– Workers = GOMAXPROCS
func DefaultOptions() Options {
	return Options{
		Size:    0,
		Mode:    ModeGS,
		Seed:    0,
		Logger:  slog.New(slog.DiscardHandler),
		Workers: runtime.GOMAXPROCS(0),
	}
}

// WithSize sets the sample size (k of a k-DPP).
func WithSize(k int) Option {
	return func(o *Options) { o.Size = k }
}

// WithMode sets the requested sampler.
func WithMode(m Mode) Option {
	return func(o *Options) { o.Mode = m }
}

// WithSeed sets the seed of the default PCG source.
func WithSeed(seed uint64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithSource injects a random source. A source must not be shared between
// concurrent sampling calls.
func WithSource(src rand.Source) Option {
	return func(o *Options) { o.Source = src }
}

// WithLogger sets the structured logger; nil restores the discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = slog.New(slog.DiscardHandler)
		}
		o.Logger = l
	}
}

// WithStepHook installs a per-step observer.
func WithStepHook(h StepHook) Option {
	return func(o *Options) { o.Hook = h }
}

// WithWorkers bounds the number of goroutines used by SampleMany.
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// buildOptions applies opts on top of DefaultOptions.
func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	return o
}

// source returns the random source for a single call.
func (o *Options) source() rand.Source {
	if o.Source != nil {
		return o.Source
	}
	return sourceFromSeed(o.Seed)
}

// workers returns the SampleMany goroutine limit; <=0 means GOMAXPROCS.
func (o *Options) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// emit forwards a step to the hook, if any.
func (o *Options) emit(s Step) {
	if o.Hook != nil {
		o.Hook(s)
	}
}

package config

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvdpp/dpp"
)

// KernelType maps the configured type string to dpp.KernelType.
func (c *JobConfig) KernelType() dpp.KernelType {
	if c.Kernel.Type == "likelihood" {
		return dpp.Likelihood
	}
	return dpp.Correlation
}

// Options converts the sampling section into dpp options.
func (c *JobConfig) Options() []dpp.Option {
	s := c.Sampling
	opts := []dpp.Option{
		dpp.WithMode(dpp.Mode(s.Mode)),
		dpp.WithSize(s.Size),
		dpp.WithSeed(s.Seed),
	}
	if s.Workers > 0 {
		opts = append(opts, dpp.WithWorkers(s.Workers))
	}
	return opts
}

// RealDPP validates the job and builds the configured real-valued projection DPP.
func (c *JobConfig) RealDPP() (*dpp.ProjectionDPP[float64], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	k := c.Kernel
	kind := c.KernelType()
	switch {
	case c.Complex():
		return nil, fmt.Errorf("config: kernel has an imaginary part, use ComplexDPP")
	case len(k.Matrix) > 0:
		r, cols, _ := shape(k.Matrix)
		if r != cols {
			return nil, fmt.Errorf("config: matrix %dx%d: %w", r, cols, dpp.ErrNonSquare)
		}
		kern, err := dpp.NewKernelFromData(r, flatten(k.Matrix))
		if err != nil {
			return nil, err
		}
		return dpp.NewProjectionDPP(kind, kern)
	case k.Eigen != nil:
		r, cols, _ := shape(k.Eigen.Vectors)
		return dpp.FromEigen(kind, k.Eigen.Values, mat.NewDense(r, cols, flatten(k.Eigen.Vectors)))
	default:
		r, cols, _ := shape(k.Features)
		return dpp.FromFeatures(kind, mat.NewDense(r, cols, flatten(k.Features)))
	}
}

// ComplexDPP validates the job and builds the configured complex projection
// DPP from matrix + imag.
func (c *JobConfig) ComplexDPP() (*dpp.ProjectionDPP[complex128], error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	k := c.Kernel
	if len(k.Matrix) == 0 {
		return nil, fmt.Errorf("config: complex kernels need an explicit matrix")
	}
	r, cols, _ := shape(k.Matrix)
	if r != cols {
		return nil, fmt.Errorf("config: matrix %dx%d: %w", r, cols, dpp.ErrNonSquare)
	}
	re, im := flatten(k.Matrix), flatten(k.Imag)
	data := make([]complex128, len(re))
	for i := range re {
		var v float64
		if i < len(im) {
			v = im[i]
		}
		data[i] = complex(re[i], v)
	}
	kern, err := dpp.NewKernelFromData(r, data)
	if err != nil {
		return nil, err
	}
	return dpp.NewProjectionDPP(c.KernelType(), kern)
}

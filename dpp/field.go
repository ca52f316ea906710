package dpp

import (
	"math"
	"math/cmplx"
)

// Field is the set of scalar types a kernel may hold: real symmetric kernels
// use float64, complex Hermitian (or generic complex) kernels use complex128.
type Field interface {
	float64 | complex128
}

// conj returns the complex conjugate of x (identity on float64).
func conj[T Field](x T) T {
	if z, ok := any(x).(complex128); ok {
		return any(cmplx.Conj(z)).(T)
	}
	return x
}

// re returns the real part of x.
func re[T Field](x T) float64 {
	switch v := any(x).(type) {
	case complex128:
		return real(v)
	case float64:
		return v
	}
	return 0
}

// abs2 returns |x|², avoiding the square root of cmplx.Abs.
func abs2[T Field](x T) float64 {
	switch v := any(x).(type) {
	case complex128:
		return real(v)*real(v) + imag(v)*imag(v)
	case float64:
		return v * v
	}
	return 0
}

// fromReal lifts a real value into T.
func fromReal[T Field](x float64) T {
	var z T
	switch p := any(&z).(type) {
	case *float64:
		*p = x
	case *complex128:
		*p = complex(x, 0)
	}
	return z
}

// isFinite reports whether every component of x is finite.
func isFinite[T Field](x T) bool {
	switch v := any(x).(type) {
	case complex128:
		return !cmplx.IsNaN(v) && !cmplx.IsInf(v)
	case float64:
		return !math.IsNaN(v) && !math.IsInf(v, 0)
	}
	return false
}

// closeTo implements numpy-style allclose for a single pair:
// |a-b| <= atol + rtol*|b|.
func closeTo[T Field](a, b T, atol, rtol float64) bool {
	return math.Sqrt(abs2(a-b)) <= atol+rtol*math.Sqrt(abs2(b))
}

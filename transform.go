package paracletic

import (
	"fmt"
	"math"
)

// Dim is the dimension of the chaotic state vector.
const Dim = 12

// eps is the near-zero threshold guarding every division by a sum.
const eps = 1e-12

// lifeGain scales the output of the Life principle.
const lifeGain = 1.0

// Vector is a point of the chaotic system.
type Vector [Dim]float64

// Principle is one of the seven stateless vector transforms applied on
// every step.
type Principle int

const (
	// Truth returns its input unchanged.
	Truth Principle = iota

	// Purity maps each element to its share of the L1 norm.
	Purity

	// Law clamps each element into [-1, 1].
	Law

	// Love pulls each element halfway towards the mean.
	Love

	// Wisdom blends each element with its circular neighbours.
	Wisdom

	// Life squashes each element through tanh.
	Life

	// Glory maps each element to its share of the signed squares.
	Glory
)

// principles is the application order. It is load-bearing: changing it
// changes every stream.
var principles = [...]Principle{Truth, Purity, Law, Love, Wisdom, Life, Glory}

// Principles returns the seven principles in application order.
func Principles() []Principle {
	out := make([]Principle, len(principles))
	copy(out, principles[:])
	return out
}

// String returns the name of the principle.
func (p Principle) String() string {
	switch p {
	case Truth:
		return "Truth"
	case Purity:
		return "Purity"
	case Law:
		return "Law"
	case Love:
		return "Love"
	case Wisdom:
		return "Wisdom"
	case Life:
		return "Life"
	case Glory:
		return "Glory"
	default:
		return fmt.Sprintf("Principle(%d)", p)
	}
}

// Apply runs the principle on x. Unknown principles panic.
func (p Principle) Apply(x Vector) Vector {
	switch p {
	case Truth:
		return truth(x)
	case Purity:
		return purity(x)
	case Law:
		return law(x)
	case Love:
		return love(x)
	case Wisdom:
		return wisdom(x)
	case Life:
		return life(x)
	case Glory:
		return glory(x)
	default:
		panic("paracletic: unknown principle " + p.String())
	}
}

// Pipeline applies all seven principles to x in order.
func Pipeline(x Vector) Vector {
	for _, p := range principles {
		x = p.Apply(x)
	}
	return x
}

func truth(x Vector) Vector {
	return x
}

func purity(x Vector) Vector {
	var out Vector
	s := l1(x)
	if s < eps {
		return out
	}
	for i, v := range x {
		out[i] = math.Abs(v) / s
	}
	return out
}

func law(x Vector) Vector {
	for i, v := range x {
		x[i] = math.Max(-1, math.Min(1, v))
	}
	return x
}

// negZero replaces every near-zero result of Love. It is always negative
// zero, whatever the sign of the value it replaces.
var negZero = math.Copysign(0, -1)

func love(x Vector) Vector {
	var sum float64
	for _, v := range x {
		sum += v
	}
	m := sum / Dim
	for i, v := range x {
		r := (v + m) * 0.5
		if math.Abs(r) < eps {
			r = negZero
		}
		x[i] = r
	}
	return x
}

func wisdom(x Vector) Vector {
	var out Vector
	for i := range x {
		left := x[(i+Dim-1)%Dim]
		right := x[(i+1)%Dim]
		out[i] = (x[i] + float64(0.5*(left+right))) * 0.5
	}
	return out
}

func life(x Vector) Vector {
	for i, v := range x {
		x[i] = tanh(v) * lifeGain
	}
	return x
}

func glory(x Vector) Vector {
	var sq Vector
	var s float64
	for i, v := range x {
		if v >= 0 {
			sq[i] = float64(v * v)
		} else {
			sq[i] = -float64(v * v)
		}
		s += math.Abs(sq[i])
	}
	if s < eps {
		return Vector{}
	}
	for i := range sq {
		sq[i] /= s
	}
	return sq
}

// l1 returns the sum of absolute values, accumulated left to right.
func l1(x Vector) float64 {
	var s float64
	for _, v := range x {
		s += math.Abs(v)
	}
	return s
}

// Rational approximation coefficients for tanh on |x| < 0.625.
var (
	tanhP = [...]float64{
		-9.64399179425052238628e-1,
		-9.92877231001918586564e1,
		-1.61468768441708447952e3,
	}
	tanhQ = [...]float64{
		1.12811678491632931402e2,
		2.23548839060100448583e3,
		4.84406305325125486048e3,
	}
)

// tanh is a portable hyperbolic tangent. Every intermediate product is
// rounded explicitly so results do not depend on the architecture's
// fused multiply-add or on assembly versions of math.Tanh.
func tanh(x float64) float64 {
	const maxLog = 8.8029691931113054295988e+01 // log(2**127)
	z := math.Abs(x)
	switch {
	case z > 0.5*maxLog:
		if x < 0 {
			return -1
		}
		return 1
	case z >= 0.625:
		s := math.Exp(2 * z)
		z = 1 - 2/(s+1)
		if x < 0 {
			z = -z
		}
		return z
	case x == 0:
		return x
	}
	s := float64(x * x)
	p := float64(tanhP[0]*s) + tanhP[1]
	p = float64(p*s) + tanhP[2]
	q := float64((s+tanhQ[0])*s) + tanhQ[1]
	q = float64(q*s) + tanhQ[2]
	return x + float64(x*s)*p/q
}

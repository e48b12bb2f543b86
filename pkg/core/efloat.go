package core

import "math"

// EFloat is a float64 carrying a conservative interval [Low, High] that is
// guaranteed to contain the exact result of the computation that produced it.
type EFloat struct {
	V    float64
	Low  float64
	High float64
}

// NewEFloat creates an EFloat with value v and absolute error err
func NewEFloat(v, err float64) EFloat {
	if err == 0 {
		return EFloat{V: v, Low: v, High: v}
	}
	return EFloat{
		V:    v,
		Low:  NextFloatDown(v - err),
		High: NextFloatUp(v + err),
	}
}

// ExactEFloat creates an EFloat with no error
func ExactEFloat(v float64) EFloat {
	return EFloat{V: v, Low: v, High: v}
}

// Add returns e + other
func (e EFloat) Add(other EFloat) EFloat {
	return EFloat{
		V:    e.V + other.V,
		Low:  NextFloatDown(e.Low + other.Low),
		High: NextFloatUp(e.High + other.High),
	}
}

// Sub returns e - other
func (e EFloat) Sub(other EFloat) EFloat {
	return EFloat{
		V:    e.V - other.V,
		Low:  NextFloatDown(e.Low - other.High),
		High: NextFloatUp(e.High - other.Low),
	}
}

// Mul returns e * other
func (e EFloat) Mul(other EFloat) EFloat {
	prod := [4]float64{
		e.Low * other.Low, e.High * other.Low,
		e.Low * other.High, e.High * other.High,
	}
	return EFloat{
		V:    e.V * other.V,
		Low:  NextFloatDown(math.Min(math.Min(prod[0], prod[1]), math.Min(prod[2], prod[3]))),
		High: NextFloatUp(math.Max(math.Max(prod[0], prod[1]), math.Max(prod[2], prod[3]))),
	}
}

// Div returns e / other. A divisor interval that contains zero, including
// one with zero as an endpoint, yields an unbounded result.
func (e EFloat) Div(other EFloat) EFloat {
	v := e.V / other.V
	if other.Low <= 0 && other.High >= 0 {
		return EFloat{V: v, Low: math.Inf(-1), High: math.Inf(1)}
	}
	div := [4]float64{
		e.Low / other.Low, e.High / other.Low,
		e.Low / other.High, e.High / other.High,
	}
	return EFloat{
		V:    v,
		Low:  NextFloatDown(math.Min(math.Min(div[0], div[1]), math.Min(div[2], div[3]))),
		High: NextFloatUp(math.Max(math.Max(div[0], div[1]), math.Max(div[2], div[3]))),
	}
}

// Neg returns -e
func (e EFloat) Neg() EFloat {
	return EFloat{V: -e.V, Low: -e.High, High: -e.Low}
}

// Sqrt returns the square root of e. The negative part of the interval is
// clamped to zero, so a value known only to be near zero stays bounded.
func (e EFloat) Sqrt() EFloat {
	return EFloat{
		V:    math.Sqrt(math.Max(0, e.V)),
		Low:  math.Max(0, NextFloatDown(math.Sqrt(math.Max(0, e.Low)))),
		High: NextFloatUp(math.Sqrt(math.Max(0, e.High))),
	}
}

// Abs returns |e|
func (e EFloat) Abs() EFloat {
	if e.Low >= 0 {
		return e
	}
	if e.High <= 0 {
		return e.Neg()
	}
	return EFloat{V: math.Abs(e.V), Low: 0, High: math.Max(-e.Low, e.High)}
}

// Square returns e * e
func (e EFloat) Square() EFloat {
	return e.Mul(e)
}

// LowerBound returns the low end of the error interval
func (e EFloat) LowerBound() float64 {
	return e.Low
}

// UpperBound returns the high end of the error interval
func (e EFloat) UpperBound() float64 {
	return e.High
}

// AbsoluteError returns the largest distance from the value to either bound
func (e EFloat) AbsoluteError() float64 {
	return NextFloatUp(math.Max(math.Abs(e.High-e.V), math.Abs(e.V-e.Low)))
}

// Quadratic solves a·t² + b·t + c = 0 and returns the roots in ascending order.
// It reports false when the discriminant is negative.
func Quadratic(a, b, c EFloat) (EFloat, EFloat, bool) {
	discrim := math.FMA(b.V, b.V, -4*a.V*c.V)
	if discrim < 0 {
		return EFloat{}, EFloat{}, false
	}
	rootDiscrim := math.Sqrt(discrim)
	floatRootDiscrim := NewEFloat(rootDiscrim, MachineEpsilon*rootDiscrim)

	var q EFloat
	if b.V < 0 {
		q = ExactEFloat(-0.5).Mul(b.Sub(floatRootDiscrim))
	} else {
		q = ExactEFloat(-0.5).Mul(b.Add(floatRootDiscrim))
	}
	t0 := q.Div(a)
	t1 := c.Div(q)
	if t0.V > t1.V {
		t0, t1 = t1, t0
	}
	return t0, t1, true
}

package core

import "math"

// Interval is a closed range of reals used for conservative function bounds
type Interval struct {
	Low, High float64
}

// NewInterval creates an interval spanning both values in either order
func NewInterval(a, b float64) Interval {
	return Interval{Low: math.Min(a, b), High: math.Max(a, b)}
}

// PointInterval creates a degenerate interval
func PointInterval(v float64) Interval {
	return Interval{Low: v, High: v}
}

// Add returns the interval sum
func (i Interval) Add(other Interval) Interval {
	return Interval{Low: i.Low + other.Low, High: i.High + other.High}
}

// Sub returns the interval difference
func (i Interval) Sub(other Interval) Interval {
	return Interval{Low: i.Low - other.High, High: i.High - other.Low}
}

// Mul returns the interval product
func (i Interval) Mul(other Interval) Interval {
	a, b := i.Low*other.Low, i.High*other.Low
	c, d := i.Low*other.High, i.High*other.High
	return Interval{
		Low:  math.Min(math.Min(a, b), math.Min(c, d)),
		High: math.Max(math.Max(a, b), math.Max(c, d)),
	}
}

// Sin bounds sin over the interval. The input must lie within [0, 2π].
func (i Interval) Sin() Interval {
	sinLow, sinHigh := math.Sin(i.Low), math.Sin(i.High)
	if sinLow > sinHigh {
		sinLow, sinHigh = sinHigh, sinLow
	}
	if i.Low < math.Pi/2 && i.High > math.Pi/2 {
		sinHigh = 1
	}
	if i.Low < 3*math.Pi/2 && i.High > 3*math.Pi/2 {
		sinLow = -1
	}
	return Interval{Low: sinLow, High: sinHigh}
}

// Cos bounds cos over the interval. The input must lie within [0, 2π].
func (i Interval) Cos() Interval {
	cosLow, cosHigh := math.Cos(i.Low), math.Cos(i.High)
	if cosLow > cosHigh {
		cosLow, cosHigh = cosHigh, cosLow
	}
	if i.Low < math.Pi && i.High > math.Pi {
		cosLow = -1
	}
	return Interval{Low: cosLow, High: cosHigh}
}

package transform

import (
	"math"

	"github.com/df07/go-pbrt-renderer/pkg/core"
)

// DerivativeTerm is a coefficient of the motion derivative that depends
// linearly on the moving point
type DerivativeTerm struct {
	Kc, Kx, Ky, Kz float64
}

// Eval evaluates the term for point p
func (d DerivativeTerm) Eval(p core.Vec3) float64 {
	return d.Kc + d.Kx*p.X + d.Ky*p.Y + d.Kz*p.Z
}

// intervalFindZeros finds the zeros of
// c1 + (c2 + c3·t)·cos(2θt) + (c4 + c5·t)·sin(2θt) over tInterval by
// bisecting until depth runs out, then refining with Newton steps.
func intervalFindZeros(c1, c2, c3, c4, c5, theta float64, tInterval core.Interval, depth int, zeros []float64) []float64 {
	point := core.PointInterval
	twoTheta := point(2 * theta).Mul(tInterval)
	rng := point(c1).
		Add(point(c2).Add(point(c3).Mul(tInterval)).Mul(twoTheta.Cos())).
		Add(point(c4).Add(point(c5).Mul(tInterval)).Mul(twoTheta.Sin()))
	if rng.Low > 0 || rng.High < 0 || rng.Low == rng.High {
		return zeros
	}

	if depth > 0 {
		mid := (tInterval.Low + tInterval.High) * 0.5
		zeros = intervalFindZeros(c1, c2, c3, c4, c5, theta, core.Interval{Low: tInterval.Low, High: mid}, depth-1, zeros)
		return intervalFindZeros(c1, c2, c3, c4, c5, theta, core.Interval{Low: mid, High: tInterval.High}, depth-1, zeros)
	}

	tNewton := (tInterval.Low + tInterval.High) * 0.5
	for i := 0; i < 4; i++ {
		fNewton := c1 + (c2+c3*tNewton)*math.Cos(2*theta*tNewton) +
			(c4+c5*tNewton)*math.Sin(2*theta*tNewton)
		fPrimeNewton := (c3+2*(c4+c5*tNewton)*theta)*math.Cos(2*tNewton*theta) +
			(c5-2*(c2+c3*tNewton)*theta)*math.Sin(2*tNewton*theta)
		if fNewton == 0 || fPrimeNewton == 0 {
			break
		}
		tNewton -= fNewton / fPrimeNewton
	}
	return append(zeros, tNewton)
}

package pathedit

import "math"

// cubicDistanceSamples is the number of subdivisions used when approximating
// the distance from a point to a cubic bezier. The distance only drives
// hit-testing thresholds, so a fixed sampling is precise enough.
const cubicDistanceSamples = 20

// cubicPos evaluates the cubic bezier at t using the Bernstein form.
func cubicPos(p0, p1, p2, p3 Point, t float64) Point {
	p := Point{}
	p.X = p0.X + t*(-3.0*p0.X+3.0*p1.X) + t*t*(3.0*p0.X-6.0*p1.X+3.0*p2.X) + t*t*t*(-p0.X+3.0*p1.X-3.0*p2.X+p3.X)
	p.Y = p0.Y + t*(-3.0*p0.Y+3.0*p1.Y) + t*t*(3.0*p0.Y-6.0*p1.Y+3.0*p2.Y) + t*t*t*(-p0.Y+3.0*p1.Y-3.0*p2.Y+p3.Y)
	return p
}

// splitCubicBezier splits the cubic bezier at t using de Casteljau's algorithm.
// The two returned curves concatenate to the original exactly.
func splitCubicBezier(p0, p1, p2, p3 Point, t float64) (Point, Point, Point, Point, Point, Point, Point, Point) {
	pm := p1.Interpolate(p2, t)

	q0 := p0
	q1 := p0.Interpolate(p1, t)
	q2 := q1.Interpolate(pm, t)

	r3 := p3
	r2 := p2.Interpolate(p3, t)
	r1 := pm.Interpolate(r2, t)

	r0 := q2.Interpolate(r1, t)
	q3 := r0
	return q0, q1, q2, q3, r0, r1, r2, r3
}

// cubicBounds1D returns the range covered by one coordinate of a cubic bezier,
// evaluating it at the roots of its derivative and at the end points.
func cubicBounds1D(p0, p1, p2, p3 float64) (float64, float64) {
	min := math.Min(p0, p3)
	max := math.Max(p0, p3)

	// a third of the derivative of the cubic is a*t^2 + b*t + c
	a := -p0 + 3.0*p1 - 3.0*p2 + p3
	b := 2.0*p0 - 4.0*p1 + 2.0*p2
	c := -p0 + p1
	t1, t2 := solveQuadraticFormula(a, b, c)
	for _, t := range [2]float64{t1, t2} {
		if !math.IsNaN(t) && 0.0 < t && t < 1.0 {
			x := p0 + t*(-3.0*p0+3.0*p1) + t*t*(3.0*p0-6.0*p1+3.0*p2) + t*t*t*(-p0+3.0*p1-3.0*p2+p3)
			min = math.Min(min, x)
			max = math.Max(max, x)
		}
	}
	return min, max
}

// distanceSqPointSegment returns the squared distance from P to the line segment AB.
func distanceSqPointSegment(p, a, b Point) float64 {
	d := b.Sub(a)
	if d.IsZero() {
		return p.Sub(a).Dot(p.Sub(a))
	}
	t := p.Sub(a).Dot(d) / d.Dot(d)
	t = math.Max(0.0, math.Min(1.0, t))
	q := a.Add(d.Mul(t))
	return p.Sub(q).Dot(p.Sub(q))
}

// distanceSqPointCubic returns the squared distance from P to the cubic bezier,
// approximated by sampling at evenly spaced values of t.
func distanceSqPointCubic(p, p0, p1, p2, p3 Point) float64 {
	distSq := math.Inf(1)
	for i := 0; i <= cubicDistanceSamples; i++ {
		t := float64(i) / float64(cubicDistanceSamples)
		q := cubicPos(p0, p1, p2, p3, t)
		distSq = math.Min(distSq, p.Sub(q).Dot(p.Sub(q)))
	}
	return distSq
}

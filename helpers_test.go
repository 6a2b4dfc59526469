package pathedit

import "math/rand"

func setEpsilon(epsilon float64) func() {
	origEpsilon := Epsilon
	Epsilon = epsilon
	return func() {
		Epsilon = origEpsilon
	}
}

// RandomPath returns a path of n anchors with random line and cubic bezier segments.
func RandomPath(n int, closed bool) *Path {
	p := &Path{}
	if 0 < n {
		p.MoveTo(rand.NormFloat64(), rand.NormFloat64())
		for i := 1; i < n; i++ {
			switch rand.Intn(2) {
			case 0:
				p.LineTo(rand.NormFloat64(), rand.NormFloat64())
			case 1:
				p.CubeTo(rand.NormFloat64(), rand.NormFloat64(), rand.NormFloat64(), rand.NormFloat64(), rand.NormFloat64(), rand.NormFloat64())
			}
		}
		if closed {
			p.Close()
		}
	}
	return p
}

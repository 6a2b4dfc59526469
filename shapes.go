package pathedit

import "math"

// Line returns a line segment from (0,0) to (x,y).
func Line(x, y float64) *Path {
	if Equal(x, 0.0) && Equal(y, 0.0) {
		return &Path{}
	}

	p := &Path{}
	p.LineTo(x, y)
	return p
}

// Rectangle returns a rectangle of width w and height h.
func Rectangle(w, h float64) *Path {
	if Equal(w, 0.0) || Equal(h, 0.0) {
		return &Path{}
	}

	p := &Path{}
	p.LineTo(w, 0.0)
	p.LineTo(w, h)
	p.LineTo(0.0, h)
	p.Close()
	return p
}

// BeveledRectangle returns a rectangle of width w and height h with beveled corners at distance r from the corner.
func BeveledRectangle(w, h, r float64) *Path {
	if Equal(w, 0.0) || Equal(h, 0.0) {
		return &Path{}
	} else if Equal(r, 0.0) {
		return Rectangle(w, h)
	}

	r = math.Abs(r)
	r = math.Min(r, w/2.0)
	r = math.Min(r, h/2.0)

	p := &Path{}
	p.MoveTo(0.0, r)
	p.LineTo(r, 0.0)
	p.LineTo(w-r, 0.0)
	p.LineTo(w, r)
	p.LineTo(w, h-r)
	p.LineTo(w-r, h)
	p.LineTo(r, h)
	p.LineTo(0.0, h-r)
	p.Close()
	return p
}

// RegularPolygon returns a regular polygon with radius r. It uses n vertices/edges, so when n approaches infinity this will return a path that approximates a circle. n must be 3 or more. The up boolean defines whether the first point will point north or not.
func RegularPolygon(n int, r float64, up bool) *Path {
	return RegularStarPolygon(n, 1, r, up)
}

// RegularStarPolygon returns a regular star polygon with radius r. It uses n vertices of density d. This will result in a self-intersecting star in counter clockwise direction. If n/2 < d the star will be clockwise and if n and d are not coprime a regular polygon will be obtained, possibly with multiple windings. n must be 3 or more and d 2 or more. The up boolean defines whether the first point will point north or not.
func RegularStarPolygon(n, d int, r float64, up bool) *Path {
	if n < 3 || d < 1 || n == d*2 || Equal(r, 0.0) {
		return &Path{}
	}

	dtheta := 2.0 * math.Pi / float64(n)
	theta0 := 0.5 * math.Pi
	if !up {
		theta0 += dtheta / 2.0
	}

	p := &Path{}
	for i := 0; i == 0 || i%n != 0; i += d {
		theta := theta0 + float64(i)*dtheta
		sintheta, costheta := math.Sincos(theta)
		if i == 0 {
			p.MoveTo(r*costheta, r*sintheta)
		} else {
			p.LineTo(r*costheta, r*sintheta)
		}
	}
	p.Close()
	return p
}

// StarPolygon returns a star polygon of n points with alternating radius R and r. The up boolean defines whether the first point (true) or second point (false) will be pointing north.
func StarPolygon(n int, R, r float64, up bool) *Path {
	if n < 3 || Equal(R, 0.0) || Equal(r, 0.0) {
		return &Path{}
	}

	n *= 2
	dtheta := 2.0 * math.Pi / float64(n)
	theta0 := 0.5 * math.Pi
	if !up {
		theta0 += dtheta
	}

	p := &Path{}
	for i := 0; i < n; i++ {
		theta := theta0 + float64(i)*dtheta
		sintheta, costheta := math.Sincos(theta)
		radius := R
		if i%2 == 1 {
			radius = r
		}
		if i == 0 {
			p.MoveTo(radius*costheta, radius*sintheta)
		} else {
			p.LineTo(radius*costheta, radius*sintheta)
		}
	}
	p.Close()
	return p
}

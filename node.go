package pathedit

import (
	"math"
	"sort"
)

// NodeType classifies how the two handles of an anchor relate: independent
// (Cusp), collinear with any lengths (Smooth), or collinear with equal
// lengths derived from the neighboring anchors (AutoSmooth).
type NodeType int

const (
	Cusp NodeType = iota
	Smooth
	AutoSmooth
)

func (t NodeType) String() string {
	switch t {
	case Cusp:
		return "cusp"
	case Smooth:
		return "smooth"
	case AutoSmooth:
		return "auto-smooth"
	}
	return "unknown"
}

// NodeTypes records the node type per anchor index. Missing entries are
// Cusp. Anchor indices are positional, so the map must be remapped on every
// anchor insertion or deletion.
type NodeTypes map[int]NodeType

// Get returns the node type of the anchor, defaulting to Cusp.
func (m NodeTypes) Get(anchor int) NodeType {
	return m[anchor] // zero value is Cusp
}

// insert shifts all entries at or above the inserted anchor index up by one.
func (m NodeTypes) insert(anchor int) {
	var shift []int
	for i := range m {
		if anchor <= i {
			shift = append(shift, i)
		}
	}
	// from high to low so entries do not overwrite each other
	sort.Sort(sort.Reverse(sort.IntSlice(shift)))
	for _, i := range shift {
		m[i+1] = m[i]
		delete(m, i)
	}
}

// remove drops the entry for the deleted anchor index and shifts all entries above it down by one.
func (m NodeTypes) remove(anchor int) {
	delete(m, anchor)
	var shift []int
	for i := range m {
		if anchor < i {
			shift = append(shift, i)
		}
	}
	// from low to high so entries do not overwrite each other
	sort.Ints(shift)
	for _, i := range shift {
		m[i-1] = m[i]
		delete(m, i)
	}
}

////////////////////////////////////////////////////////////////

// startPosAt returns the start point of the command at index i into the path data.
func (p *Path) startPosAt(i int) Point {
	if i == 0 {
		return Point{}
	}
	return Point{p.d[i-3], p.d[i-2]}
}

// posAt returns the end point of the command at index i into the path data.
func (p *Path) posAt(i int) Point {
	n := cmdLen(p.d[i])
	return Point{p.d[i+n-3], p.d[i+n-2]}
}

// AnchorPos returns the position of the anchor, and false if it does not exist.
func (p *Path) AnchorPos(anchor int) (Point, bool) {
	i := p.anchorIndex(anchor)
	if i == -1 {
		return Point{}, false
	}
	return p.posAt(i), true
}

// handleIn returns the index into the path data of the incoming handle of
// the anchor, or -1 if it has none. For anchor 0 of a path with an explicit
// closing curve this is that curve's second control point.
func (p *Path) handleIn(anchor int) int {
	i := p.anchorIndex(anchor)
	if i == -1 {
		return -1
	}
	if p.d[i] == CubeToCmd {
		return i + 3
	}
	if anchor == 0 {
		if kind, j := p.ClosingSegment(); kind == ExplicitCurve {
			return j + 3
		}
	}
	return -1
}

// handleOut returns the index into the path data of the outgoing handle of
// the anchor, or -1 if it has none. For the last anchor of a path with an
// explicit closing curve this is that curve's first control point.
func (p *Path) handleOut(anchor int) int {
	i := p.anchorIndex(anchor)
	if i == -1 {
		return -1
	}
	j := i + cmdLen(p.d[i])
	if j < len(p.d) && p.d[j] == CubeToCmd {
		return j + 1
	}
	return -1
}

// enforceSmooth aligns both handles of the anchor along their averaged
// direction, preserving each handle's length. When the handles already point
// in nearly opposite directions the average vanishes and the handles are
// left as they are.
func enforceSmooth(p *Path, anchor int) {
	hin, hout := p.handleIn(anchor), p.handleOut(anchor)
	if hin == -1 || hout == -1 {
		return
	}
	pos, _ := p.AnchorPos(anchor)
	in := Point{p.d[hin], p.d[hin+1]}.Sub(pos)
	out := Point{p.d[hout], p.d[hout+1]}.Sub(pos)
	if Equal(in.Length(), 0.0) || Equal(out.Length(), 0.0) {
		return
	}

	dir := in.Norm(1.0).Add(out.Norm(1.0)).Norm(1.0)
	if dir.IsZero() {
		return
	}
	in = pos.Sub(dir.Mul(in.Length()))
	out = pos.Add(dir.Mul(out.Length()))
	p.d[hin], p.d[hin+1] = in.X, in.Y
	p.d[hout], p.d[hout+1] = out.X, out.Y
}

// enforceAutoSmooth sets both handles of the anchor along the tangent
// through its neighboring anchors, each a third of the shorter neighbor
// distance long. At an open path's end point this is a no-op.
func enforceAutoSmooth(p *Path, anchor int) {
	hin, hout := p.handleIn(anchor), p.handleOut(anchor)
	if hin == -1 || hout == -1 {
		return
	}
	n := p.NumAnchors()
	prev, next := anchor-1, anchor+1
	if p.Closed() {
		prev, next = (anchor-1+n)%n, (anchor+1)%n
	} else if prev < 0 || n <= next {
		return
	}
	pos, _ := p.AnchorPos(anchor)
	prevPos, _ := p.AnchorPos(prev)
	nextPos, _ := p.AnchorPos(next)

	dir := nextPos.Sub(prevPos).Norm(1.0)
	if dir.IsZero() {
		return
	}
	length := math.Min(pos.Sub(prevPos).Length(), nextPos.Sub(pos).Length()) / 3.0
	in := pos.Sub(dir.Mul(length))
	out := pos.Add(dir.Mul(length))
	p.d[hin], p.d[hin+1] = in.X, in.Y
	p.d[hout], p.d[hout+1] = out.X, out.Y
}

// enforceNodeType re-applies the handle constraint implied by the node type.
func enforceNodeType(p *Path, anchor int, t NodeType) {
	switch t {
	case Smooth:
		enforceSmooth(p, anchor)
	case AutoSmooth:
		enforceAutoSmooth(p, anchor)
	}
}

package pathedit

import (
	"fmt"
	"math"
	"strings"
)

// Path commands, stored in the data slice at both ends of each command so
// that the path can be scanned in either direction.
const (
	MoveToCmd = 1.0 << iota
	LineToCmd
	CubeToCmd
	CloseCmd
)

// cmdLen returns the number of values (including the two command markers) of the path command.
func cmdLen(cmd float64) int {
	switch cmd {
	case MoveToCmd, LineToCmd, CloseCmd:
		return 4
	case CubeToCmd:
		return 8
	}
	panic(fmt.Sprintf("unknown path command '%v'", cmd))
}

// Path defines a single vector path of anchors connected by straight lines
// and cubic beziers. It starts with a MoveTo and may end in a Close, which
// connects the last anchor back to the first. Data is stored as a flat list
// of float64: first the command value, then its coordinates, then the
// command value again.
type Path struct {
	d []float64
}

// Empty returns true if the path has no segments.
func (p *Path) Empty() bool {
	return len(p.d) <= cmdLen(MoveToCmd)
}

// Copy returns a deep copy of the path.
func (p *Path) Copy() *Path {
	q := &Path{}
	q.d = append(q.d, p.d...)
	return q
}

// Equals returns true if both paths have the same commands and coordinates within tolerance Epsilon.
func (p *Path) Equals(q *Path) bool {
	if len(p.d) != len(q.d) {
		return false
	}
	for i := 0; i < len(p.d); i++ {
		if !Equal(p.d[i], q.d[i]) {
			return false
		}
	}
	return true
}

// StartPos returns the position of the first anchor.
func (p *Path) StartPos() Point {
	if len(p.d) == 0 {
		return Point{}
	}
	return Point{p.d[1], p.d[2]}
}

// Pos returns the current pen position, ie. the position of the last anchor.
func (p *Path) Pos() Point {
	if len(p.d) == 0 {
		return Point{}
	}
	return Point{p.d[len(p.d)-3], p.d[len(p.d)-2]}
}

// Closed returns true if the path ends in a Close command.
func (p *Path) Closed() bool {
	return 0 < len(p.d) && p.d[len(p.d)-1] == CloseCmd
}

////////////////////////////////////////////////////////////////

// MoveTo starts the path at (x,y). It must be the first command.
func (p *Path) MoveTo(x, y float64) *Path {
	if len(p.d) != 0 {
		panic("MoveTo must be the first command")
	}
	p.d = append(p.d, MoveToCmd, x, y, MoveToCmd)
	return p
}

// LineTo adds a straight line towards (x,y).
func (p *Path) LineTo(x, y float64) *Path {
	if p.Closed() {
		panic("path is closed")
	}
	if len(p.d) == 0 {
		p.MoveTo(0.0, 0.0)
	}
	p.d = append(p.d, LineToCmd, x, y, LineToCmd)
	return p
}

// CubeTo adds a cubic bezier with control points (x1,y1) and (x2,y2) towards (x,y).
func (p *Path) CubeTo(x1, y1, x2, y2, x, y float64) *Path {
	if p.Closed() {
		panic("path is closed")
	}
	if len(p.d) == 0 {
		p.MoveTo(0.0, 0.0)
	}
	p.d = append(p.d, CubeToCmd, x1, y1, x2, y2, x, y, CubeToCmd)
	return p
}

// Close closes the path, connecting the last anchor to the first with a
// straight line, unless preceded by a cubic bezier ending at the first
// anchor (the explicit closing curve).
func (p *Path) Close() *Path {
	if len(p.d) == 0 || p.Closed() {
		return p
	}
	start := p.StartPos()
	p.d = append(p.d, CloseCmd, start.X, start.Y, CloseCmd)
	return p
}

////////////////////////////////////////////////////////////////

// ClosingKind specifies how a path is closed.
type ClosingKind int

const (
	// NoClose means the path is open.
	NoClose ClosingKind = iota
	// ImplicitLine means the Close command itself draws the straight closing segment.
	ImplicitLine
	// ExplicitCurve means a cubic bezier immediately before the Close command
	// ends at the first anchor and forms the closing segment.
	ExplicitCurve
)

// ClosingSegment returns the kind of closing segment and the index into the
// path data of the explicit closing cubic bezier, or -1 if there is none.
func (p *Path) ClosingSegment() (ClosingKind, int) {
	if !p.Closed() {
		return NoClose, -1
	}
	i := len(p.d) - cmdLen(CloseCmd) // start of the Close command
	if 0 < i {
		j := i - cmdLen(p.d[i-1]) // start of the command before Close
		if p.d[j] == CubeToCmd && (Point{p.d[j+5], p.d[j+6]}).Equals(p.StartPos()) {
			return ExplicitCurve, j
		}
	}
	return ImplicitLine, -1
}

////////////////////////////////////////////////////////////////

// Anchor is a point the path passes through, together with the bezier
// control points (handles) of its adjacent segments. Anchors are derived
// from the path data on demand; indices are positional and invalidated by
// any structural mutation.
type Anchor struct {
	Index      int
	Pos        Point
	In, Out    Point
	HasIn      bool
	HasOut     bool
	ClosingEnd bool // anchor 0 is the endpoint of an explicit closing curve
}

// Anchors returns the path's anchors in path order. The endpoint of an
// explicit closing curve is not its own anchor: its incoming handle belongs
// to anchor 0 and its outgoing handle to the last anchor.
func (p *Path) Anchors() []Anchor {
	if len(p.d) == 0 {
		return nil
	}
	_, closing := p.ClosingSegment()

	var anchors []Anchor
	for s := p.Scanner(); s.Scan(); {
		switch s.Cmd() {
		case MoveToCmd, LineToCmd:
			anchors = append(anchors, Anchor{Index: len(anchors), Pos: s.End()})
		case CubeToCmd:
			anchors[len(anchors)-1].Out = s.CP1()
			anchors[len(anchors)-1].HasOut = true
			if s.Index() == closing {
				anchors[0].In = s.CP2()
				anchors[0].HasIn = true
				anchors[0].ClosingEnd = true
			} else {
				anchors = append(anchors, Anchor{Index: len(anchors), Pos: s.End(), In: s.CP2(), HasIn: true})
			}
		}
	}
	return anchors
}

// NumAnchors returns the number of anchors of the path.
func (p *Path) NumAnchors() int {
	if len(p.d) == 0 {
		return 0
	}
	_, closing := p.ClosingSegment()
	n := 0
	for s := p.Scanner(); s.Scan(); {
		if cmd := s.Cmd(); cmd == MoveToCmd || cmd == LineToCmd || cmd == CubeToCmd && s.Index() != closing {
			n++
		}
	}
	return n
}

// anchorIndex returns the index into the path data of the command that ends
// at the given anchor, or -1 if the anchor does not exist. Anchor 0 maps to
// the MoveTo command.
func (p *Path) anchorIndex(anchor int) int {
	if anchor < 0 {
		return -1
	}
	_, closing := p.ClosingSegment()
	n := 0
	for s := p.Scanner(); s.Scan(); {
		if cmd := s.Cmd(); cmd == MoveToCmd || cmd == LineToCmd || cmd == CubeToCmd && s.Index() != closing {
			if n == anchor {
				return s.Index()
			}
			n++
		}
	}
	return -1
}

// Coords returns the anchor positions of the path.
func (p *Path) Coords() []Point {
	var coords []Point
	for _, anchor := range p.Anchors() {
		coords = append(coords, anchor.Pos)
	}
	return coords
}

////////////////////////////////////////////////////////////////

// Translate translates the path by (x,y).
func (p *Path) Translate(x, y float64) *Path {
	for i := 0; i < len(p.d); {
		cmd := p.d[i]
		for j := i + 1; j < i+cmdLen(cmd)-1; j += 2 {
			p.d[j] += x
			p.d[j+1] += y
		}
		i += cmdLen(cmd)
	}
	return p
}

// Bounds returns the exact bounding rectangle of the path, evaluating cubic
// beziers at the roots of their derivative.
func (p *Path) Bounds() Rect {
	if len(p.d) == 0 {
		return Rect{}
	}
	start := p.StartPos()
	xmin, xmax := start.X, start.X
	ymin, ymax := start.Y, start.Y
	for s := p.Scanner(); s.Scan(); {
		switch s.Cmd() {
		case LineToCmd, CloseCmd:
			end := s.End()
			xmin = math.Min(xmin, end.X)
			xmax = math.Max(xmax, end.X)
			ymin = math.Min(ymin, end.Y)
			ymax = math.Max(ymax, end.Y)
		case CubeToCmd:
			p0, cp1, cp2, p3 := s.Start(), s.CP1(), s.CP2(), s.End()
			x0, x1 := cubicBounds1D(p0.X, cp1.X, cp2.X, p3.X)
			y0, y1 := cubicBounds1D(p0.Y, cp1.Y, cp2.Y, p3.Y)
			xmin = math.Min(xmin, x0)
			xmax = math.Max(xmax, x1)
			ymin = math.Min(ymin, y0)
			ymax = math.Max(ymax, y1)
		}
	}
	return Rect{xmin, ymin, xmax - xmin, ymax - ymin}
}

////////////////////////////////////////////////////////////////

func num(f float64) string {
	return fmt.Sprintf("%g", f)
}

// String returns the path in SVG path data format.
func (p *Path) String() string {
	sb := strings.Builder{}
	for s := p.Scanner(); s.Scan(); {
		end := s.End()
		switch s.Cmd() {
		case MoveToCmd:
			sb.WriteString("M" + num(end.X) + " " + num(end.Y))
		case LineToCmd:
			sb.WriteString("L" + num(end.X) + " " + num(end.Y))
		case CubeToCmd:
			cp1, cp2 := s.CP1(), s.CP2()
			sb.WriteString("C" + num(cp1.X) + " " + num(cp1.Y) + " " + num(cp2.X) + " " + num(cp2.Y) + " " + num(end.X) + " " + num(end.Y))
		case CloseCmd:
			sb.WriteString("z")
		}
	}
	return sb.String()
}

package pathedit

import (
	"fmt"
	"sort"
)

// Session is a node-edit session owning a single path. All mutations go
// through the session so that node types and the selection stay consistent
// with the anchor indices; anchor indices obtained before a mutating call
// must not be reused afterwards.
type Session struct {
	p        *Path
	types    NodeTypes
	sel      Selection
	snapshot []float64
}

// Edit starts a node-edit session on a copy of the path.
func Edit(p *Path) *Session {
	if len(p.d) != 0 && p.d[0] != MoveToCmd {
		panic("path must start with MoveTo")
	}
	return &Session{p: p.Copy(), types: NodeTypes{}, sel: Selection{}}
}

// Path returns the path being edited. Renderers must re-query anchors after
// every mutating call; no change notifications are sent.
func (s *Session) Path() *Path {
	return s.p
}

// Selection returns the session's selected anchors.
func (s *Session) Selection() Selection {
	return s.sel
}

// NodeType returns the node type of the anchor.
func (s *Session) NodeType(anchor int) NodeType {
	return s.types.Get(anchor)
}

// Finish ends the session and returns the edited path together with its
// recomputed bounding rectangle, so the caller can reposition the owning
// shape without a visual jump. The session must not be used afterwards.
func (s *Session) Finish() (*Path, Rect) {
	p := s.p
	s.p = &Path{}
	clear(s.types)
	s.sel.Clear()
	s.snapshot = nil
	return p, p.Bounds()
}

////////////////////////////////////////////////////////////////

// replace splices the path data values in [i:j) with vals.
func (p *Path) replace(i, j int, vals ...float64) {
	p.d = append(p.d[:i], append(vals, p.d[j:]...)...)
}

// defaultCurveControls returns control points at a third and two thirds
// along the segment from start to end, offset perpendicularly by a quarter
// of the segment length, so a converted line shows as a visibly
// non-degenerate curve.
func defaultCurveControls(start, end Point) (Point, Point) {
	dir := end.Sub(start)
	perp := dir.Norm(1.0).Rot90CCW().Mul(0.25 * dir.Length())
	cp1 := start.Add(dir.Mul(0.33)).Add(perp)
	cp2 := start.Add(dir.Mul(0.67)).Add(perp)
	return cp1, cp2
}

// ConvertLineToCurve converts the straight segment ending at the anchor into
// a cubic bezier with default control points. The segment ending at anchor 0
// is the closing segment, converted by ConvertClosingToCurve instead.
func (s *Session) ConvertLineToCurve(anchor int) error {
	p := s.p
	i := p.anchorIndex(anchor)
	if i == -1 {
		return fmt.Errorf("anchor %d does not exist", anchor)
	} else if anchor == 0 {
		return fmt.Errorf("anchor 0 has no own segment, convert the closing segment instead")
	} else if p.d[i] != LineToCmd {
		return fmt.Errorf("segment ending at anchor %d is not a line", anchor)
	}

	start, end := p.startPosAt(i), p.posAt(i)
	cp1, cp2 := defaultCurveControls(start, end)
	p.replace(i, i+cmdLen(LineToCmd), CubeToCmd, cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y, CubeToCmd)
	return nil
}

// ConvertCurveToLine converts the cubic bezier ending at the anchor into a
// straight segment to the same endpoint. The control points are discarded.
func (s *Session) ConvertCurveToLine(anchor int) error {
	p := s.p
	i := p.anchorIndex(anchor)
	if i == -1 {
		return fmt.Errorf("anchor %d does not exist", anchor)
	} else if anchor == 0 {
		return fmt.Errorf("anchor 0 has no own segment, convert the closing segment instead")
	} else if p.d[i] != CubeToCmd {
		return fmt.Errorf("segment ending at anchor %d is not a curve", anchor)
	}

	end := p.posAt(i)
	p.replace(i, i+cmdLen(CubeToCmd), LineToCmd, end.X, end.Y, LineToCmd)
	return nil
}

// ConvertClosingToCurve converts the straight closing segment into an
// explicit closing curve: a cubic bezier inserted before the Close command,
// ending at the first anchor.
func (s *Session) ConvertClosingToCurve() error {
	p := s.p
	switch kind, _ := p.ClosingSegment(); kind {
	case NoClose:
		return fmt.Errorf("path is not closed")
	case ExplicitCurve:
		return fmt.Errorf("closing segment is already a curve")
	}

	i := len(p.d) - cmdLen(CloseCmd)
	start, end := p.startPosAt(i), p.StartPos()
	cp1, cp2 := defaultCurveControls(start, end)
	p.replace(i, i, CubeToCmd, cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y, CubeToCmd)
	return nil
}

// ConvertClosingToLine removes the explicit closing curve so the Close
// command draws the straight closing segment again.
func (s *Session) ConvertClosingToLine() error {
	p := s.p
	kind, j := p.ClosingSegment()
	if kind == NoClose {
		return fmt.Errorf("path is not closed")
	} else if kind == ImplicitLine {
		return fmt.Errorf("closing segment is already a line")
	}
	p.replace(j, j+cmdLen(CubeToCmd))
	return nil
}

////////////////////////////////////////////////////////////////

// SplitSegment splits the segment between two path-adjacent anchors in the
// middle, adding one anchor: at the midpoint for a line, at t=0.5 by de
// Casteljau subdivision for a cubic bezier. The selection is reset to the
// new anchor.
func (s *Session) SplitSegment(anchorA, anchorB int) error {
	p := s.p
	n := p.NumAnchors()
	if anchorB == anchorA+1 && 0 <= anchorA && anchorB < n {
		i := p.anchorIndex(anchorB)
		start := p.startPosAt(i)
		switch p.d[i] {
		case LineToCmd:
			mid := start.Interpolate(p.posAt(i), 0.5)
			p.replace(i, i, LineToCmd, mid.X, mid.Y, LineToCmd)
		case CubeToCmd:
			cp1 := Point{p.d[i+1], p.d[i+2]}
			cp2 := Point{p.d[i+3], p.d[i+4]}
			end := Point{p.d[i+5], p.d[i+6]}
			_, q1, q2, q3, _, r1, r2, r3 := splitCubicBezier(start, cp1, cp2, end, 0.5)
			p.replace(i, i+cmdLen(CubeToCmd),
				CubeToCmd, q1.X, q1.Y, q2.X, q2.Y, q3.X, q3.Y, CubeToCmd,
				CubeToCmd, r1.X, r1.Y, r2.X, r2.Y, r3.X, r3.Y, CubeToCmd)
		}
		s.types.insert(anchorB)
		s.sel.Clear()
		s.sel.Select(anchorB, false)
		return nil
	}

	if p.Closed() && anchorA == n-1 && anchorB == 0 {
		kind, j := p.ClosingSegment()
		if kind == ImplicitLine {
			i := len(p.d) - cmdLen(CloseCmd)
			mid := p.startPosAt(i).Interpolate(p.StartPos(), 0.5)
			p.replace(i, i, LineToCmd, mid.X, mid.Y, LineToCmd)
		} else {
			start := p.startPosAt(j)
			cp1 := Point{p.d[j+1], p.d[j+2]}
			cp2 := Point{p.d[j+3], p.d[j+4]}
			end := Point{p.d[j+5], p.d[j+6]}
			_, q1, q2, q3, _, r1, r2, r3 := splitCubicBezier(start, cp1, cp2, end, 0.5)
			p.replace(j, j+cmdLen(CubeToCmd),
				CubeToCmd, q1.X, q1.Y, q2.X, q2.Y, q3.X, q3.Y, CubeToCmd,
				CubeToCmd, r1.X, r1.Y, r2.X, r2.Y, r3.X, r3.Y, CubeToCmd)
		}
		// the new anchor comes last in path order, no indices shift
		s.sel.Clear()
		s.sel.Select(n, false)
		return nil
	}
	return fmt.Errorf("anchors %d and %d are not path-adjacent", anchorA, anchorB)
}

// DeleteAnchors removes the given anchors from the path. The whole operation
// is rejected if fewer than 2 anchors would remain. Deleting anchor 0
// promotes the next anchor into the MoveTo command. The selection is
// cleared.
func (s *Session) DeleteAnchors(anchors ...int) error {
	p := s.p
	n := p.NumAnchors()
	idxs := make([]int, 0, len(anchors))
	seen := map[int]bool{}
	for _, a := range anchors {
		if a < 0 || n <= a {
			return fmt.Errorf("anchor %d does not exist", a)
		}
		if !seen[a] {
			seen[a] = true
			idxs = append(idxs, a)
		}
	}
	if len(idxs) == 0 {
		return nil
	} else if n-len(idxs) < 2 {
		return fmt.Errorf("path must keep at least 2 anchors")
	}

	// descending order so earlier deletions do not shift later indices
	sort.Sort(sort.Reverse(sort.IntSlice(idxs)))
	for _, a := range idxs {
		s.deleteAnchor(a)
	}
	s.sel.Clear()
	return nil
}

func (s *Session) deleteAnchor(anchor int) {
	p := s.p
	if anchor == 0 {
		kind, j := p.ClosingSegment()
		// promote the next anchor into the MoveTo command
		i := cmdLen(MoveToCmd)
		next := cmdLen(p.d[i])
		pos := p.posAt(i)
		p.replace(0, i+next, MoveToCmd, pos.X, pos.Y, MoveToCmd)

		// retarget the closing segment at the new first anchor
		if kind != NoClose {
			c := len(p.d) - cmdLen(CloseCmd)
			p.d[c+1], p.d[c+2] = pos.X, pos.Y
		}
		if kind == ExplicitCurve {
			j -= next
			p.d[j+5], p.d[j+6] = pos.X, pos.Y
		}
	} else {
		i := p.anchorIndex(anchor)
		p.replace(i, i+cmdLen(p.d[i]))
	}
	s.types.remove(anchor)
}

////////////////////////////////////////////////////////////////

// MoveAnchor moves the anchor to the given position; its handles move along
// rigidly. Auto-smooth constraints around the anchor are re-applied since
// they depend on the neighbor positions.
func (s *Session) MoveAnchor(anchor int, to Point) error {
	p := s.p
	i := p.anchorIndex(anchor)
	if i == -1 {
		return fmt.Errorf("anchor %d does not exist", anchor)
	}

	hin, hout := p.handleIn(anchor), p.handleOut(anchor)
	kind, j := p.ClosingSegment()

	pos := p.posAt(i)
	delta := to.Sub(pos)
	n := cmdLen(p.d[i])
	p.d[i+n-3] += delta.X
	p.d[i+n-2] += delta.Y
	if hin != -1 {
		p.d[hin] += delta.X
		p.d[hin+1] += delta.Y
	}
	if hout != -1 {
		p.d[hout] += delta.X
		p.d[hout+1] += delta.Y
	}
	if anchor == 0 {
		if kind != NoClose {
			c := len(p.d) - cmdLen(CloseCmd)
			p.d[c+1] += delta.X
			p.d[c+2] += delta.Y
		}
		if kind == ExplicitCurve {
			p.d[j+5] += delta.X
			p.d[j+6] += delta.Y
		}
	}
	s.reenforceAround(anchor)
	return nil
}

// MoveHandle moves the incoming or outgoing handle of the anchor. For a
// Smooth anchor the opposite handle follows, keeping its own length; for an
// AutoSmooth anchor both handles are rederived from the neighbor positions.
func (s *Session) MoveHandle(anchor int, incoming bool, to Point) error {
	p := s.p
	h := p.handleOut(anchor)
	side := "outgoing"
	if incoming {
		h = p.handleIn(anchor)
		side = "incoming"
	}
	if h == -1 {
		return fmt.Errorf("anchor %d has no %s handle", anchor, side)
	}

	p.d[h], p.d[h+1] = to.X, to.Y
	switch s.types.Get(anchor) {
	case Smooth:
		s.followSmooth(anchor, incoming)
	case AutoSmooth:
		enforceAutoSmooth(p, anchor)
	}
	return nil
}

// followSmooth points the handle opposite the dragged one in the reverse
// direction, keeping its own length.
func (s *Session) followSmooth(anchor int, incoming bool) {
	p := s.p
	hin, hout := p.handleIn(anchor), p.handleOut(anchor)
	if hin == -1 || hout == -1 {
		return
	}
	pos, _ := p.AnchorPos(anchor)
	dragged, other := hin, hout
	if !incoming {
		dragged, other = hout, hin
	}
	dir := Point{p.d[dragged], p.d[dragged+1]}.Sub(pos).Norm(1.0)
	if dir.IsZero() {
		return
	}
	length := Point{p.d[other], p.d[other+1]}.Sub(pos).Length()
	q := pos.Sub(dir.Mul(length))
	p.d[other], p.d[other+1] = q.X, q.Y
}

// SetNodeType classifies the anchor and immediately applies the handle
// constraint the type implies.
func (s *Session) SetNodeType(anchor int, t NodeType) error {
	if s.p.anchorIndex(anchor) == -1 {
		return fmt.Errorf("anchor %d does not exist", anchor)
	}
	if t == Cusp {
		delete(s.types, anchor)
	} else {
		s.types[anchor] = t
	}
	enforceNodeType(s.p, anchor, t)
	return nil
}

// reenforceAround re-applies the node type constraints of the anchor and its neighbors.
func (s *Session) reenforceAround(anchor int) {
	n := s.p.NumAnchors()
	for _, a := range [3]int{anchor - 1, anchor, anchor + 1} {
		if s.p.Closed() {
			a = (a + n) % n
		} else if a < 0 || n <= a {
			continue
		}
		enforceNodeType(s.p, a, s.types.Get(a))
	}
}

////////////////////////////////////////////////////////////////

// MakeAllCurves converts every straight segment, including the closing
// segment, into a cubic bezier.
func (s *Session) MakeAllCurves() {
	n := s.p.NumAnchors()
	for i := 1; i < n; i++ {
		if j := s.p.anchorIndex(i); s.p.d[j] == LineToCmd {
			s.ConvertLineToCurve(i)
		}
	}
	if kind, _ := s.p.ClosingSegment(); kind == ImplicitLine {
		s.ConvertClosingToCurve()
	}
}

// MakeAllLines converts every cubic bezier, including an explicit closing
// curve, into a straight segment.
func (s *Session) MakeAllLines() {
	n := s.p.NumAnchors()
	for i := 1; i < n; i++ {
		if j := s.p.anchorIndex(i); s.p.d[j] == CubeToCmd {
			s.ConvertCurveToLine(i)
		}
	}
	if kind, _ := s.p.ClosingSegment(); kind == ExplicitCurve {
		s.ConvertClosingToLine()
	}
}

// MakeSelectedCurves converts the straight segments whose both end anchors
// are selected, including the closing segment when the path is closed.
// Segments with only one selected endpoint are left untouched.
func (s *Session) MakeSelectedCurves() {
	n := s.p.NumAnchors()
	for i := 1; i < n; i++ {
		if s.sel.Contains(i-1) && s.sel.Contains(i) {
			if j := s.p.anchorIndex(i); s.p.d[j] == LineToCmd {
				s.ConvertLineToCurve(i)
			}
		}
	}
	if s.sel.Contains(n-1) && s.sel.Contains(0) {
		if kind, _ := s.p.ClosingSegment(); kind == ImplicitLine {
			s.ConvertClosingToCurve()
		}
	}
}

// MakeSelectedLines converts the cubic beziers whose both end anchors are
// selected, including an explicit closing curve when the path is closed.
func (s *Session) MakeSelectedLines() {
	n := s.p.NumAnchors()
	for i := 1; i < n; i++ {
		if s.sel.Contains(i-1) && s.sel.Contains(i) {
			if j := s.p.anchorIndex(i); s.p.d[j] == CubeToCmd {
				s.ConvertCurveToLine(i)
			}
		}
	}
	if s.sel.Contains(n-1) && s.sel.Contains(0) {
		if kind, _ := s.p.ClosingSegment(); kind == ExplicitCurve {
			s.ConvertClosingToLine()
		}
	}
}

////////////////////////////////////////////////////////////////

// BeginDrag snapshots the path data so a cancelled drag leaves no partial
// mutation behind. Drags are atomic: begin on press, commit on release.
func (s *Session) BeginDrag() {
	s.snapshot = append(s.snapshot[:0], s.p.d...)
}

// CancelDrag restores the path data captured by BeginDrag.
func (s *Session) CancelDrag() {
	if s.snapshot != nil {
		s.p.d = append(s.p.d[:0], s.snapshot...)
		s.snapshot = nil
	}
}

// EndDrag commits the drag and discards the snapshot.
func (s *Session) EndDrag() {
	s.snapshot = nil
}

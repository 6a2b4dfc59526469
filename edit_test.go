package pathedit

import (
	"math"
	"testing"

	"github.com/tdewolff/test"
)

func TestEditCopiesPath(t *testing.T) {
	p := MustParseSVG("M0 0L10 0L10 10z")
	s := Edit(p)
	test.Error(t, s.MoveAnchor(0, Point{5.0, 5.0}))
	test.T(t, p.String(), "M0 0L10 0L10 10z")
}

func TestEditConvertLineToCurve(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10z"))
	test.Error(t, s.ConvertLineToCurve(1))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0C3.3 2.5 6.7 2.5 10 0L10 10z")))
	test.T(t, s.Path().NumAnchors(), 3)

	// already a curve
	test.That(t, s.ConvertLineToCurve(1) != nil)
	// anchor 0 is the closing segment's end
	test.That(t, s.ConvertLineToCurve(0) != nil)
	test.That(t, s.ConvertLineToCurve(5) != nil)
}

func TestEditConvertCurveToLine(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C3 3 7 3 10 0L10 10z"))
	test.Error(t, s.ConvertCurveToLine(1))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0L10 10z")))

	test.That(t, s.ConvertCurveToLine(1) != nil)
	test.That(t, s.ConvertCurveToLine(0) != nil)
}

func TestEditConvertRoundTrip(t *testing.T) {
	orig := MustParseSVG("M0 0L10 0L10 10z")
	s := Edit(orig)
	test.Error(t, s.ConvertLineToCurve(1))
	test.Error(t, s.ConvertCurveToLine(1))
	test.That(t, s.Path().Equals(orig))
}

func TestEditConvertClosing(t *testing.T) {
	orig := MustParseSVG("M0 0L10 0L10 10z")
	s := Edit(orig)
	test.Error(t, s.ConvertClosingToCurve())
	kind, _ := s.Path().ClosingSegment()
	test.T(t, kind, ExplicitCurve)
	test.T(t, s.Path().NumAnchors(), 3)

	test.That(t, s.ConvertClosingToCurve() != nil)

	test.Error(t, s.ConvertClosingToLine())
	test.That(t, s.Path().Equals(orig))
	test.That(t, s.ConvertClosingToLine() != nil)

	// open paths have no closing segment
	s = Edit(MustParseSVG("M0 0L10 0"))
	test.That(t, s.ConvertClosingToCurve() != nil)
	test.That(t, s.ConvertClosingToLine() != nil)
}

func TestEditSplitLine(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0"))
	test.Error(t, s.SplitSegment(0, 1))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L5 0L10 0")))
	test.T(t, s.Path().NumAnchors(), 3)

	// the new anchor is selected
	test.T(t, s.Selection().Len(), 1)
	test.That(t, s.Selection().Contains(1))
}

func TestEditSplitCurve(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C0 10 10 10 10 0"))
	test.Error(t, s.SplitSegment(0, 1))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0C0 5 2.5 7.5 5 7.5C7.5 7.5 10 5 10 0")))
	test.That(t, s.Selection().Contains(1))
}

func TestEditSplitClosingLine(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10z"))
	test.Error(t, s.SplitSegment(2, 0))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0L10 10L5 5z")))
	test.T(t, s.Path().NumAnchors(), 4)
	test.That(t, s.Selection().Contains(3))
}

func TestEditSplitClosingCurve(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0C10 10 5 10 0 0z"))
	test.Error(t, s.SplitSegment(1, 0))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0C10 5 8.75 7.5 6.875 7.5C5 7.5 2.5 5 0 0z")))
	test.T(t, s.Path().NumAnchors(), 3)
	kind, _ := s.Path().ClosingSegment()
	test.T(t, kind, ExplicitCurve)
	test.That(t, s.Selection().Contains(2))
}

func TestEditSplitRemapsNodeTypes(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10z"))
	test.Error(t, s.SetNodeType(2, Smooth))
	test.Error(t, s.SplitSegment(0, 1))
	test.T(t, s.NodeType(2), Cusp)
	test.T(t, s.NodeType(3), Smooth)
}

func TestEditSplitErrors(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10"))
	test.That(t, s.SplitSegment(0, 2) != nil)
	test.That(t, s.SplitSegment(1, 0) != nil)
	test.That(t, s.SplitSegment(2, 0) != nil) // open path has no closing segment
}

func TestEditDeleteAnchor(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10L0 10z"))
	s.Selection().Select(2, false)
	test.Error(t, s.DeleteAnchors(2))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0L0 10z")))
	test.T(t, s.Selection().Len(), 0)
}

func TestEditDeleteAnchorZero(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10z"))
	test.Error(t, s.DeleteAnchors(0))
	test.That(t, s.Path().Equals(MustParseSVG("M10 0L10 10z")))
	test.That(t, s.Path().Closed())
	test.T(t, s.Path().StartPos(), Point{10.0, 0.0})
}

func TestEditDeleteAnchorZeroClosingCurve(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10C5 15 0 5 0 0z"))
	test.Error(t, s.DeleteAnchors(0))
	test.That(t, s.Path().Equals(MustParseSVG("M10 0L10 10C5 15 0 5 10 0z")))
	kind, _ := s.Path().ClosingSegment()
	test.T(t, kind, ExplicitCurve)
	test.T(t, s.Path().NumAnchors(), 2)
}

func TestEditDeleteAnchors(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10L0 10z"))
	test.Error(t, s.DeleteAnchors(1, 3))
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 10z")))

	// duplicates count once
	s = Edit(MustParseSVG("M0 0L10 0L10 10L0 10z"))
	test.Error(t, s.DeleteAnchors(1, 1))
	test.T(t, s.Path().NumAnchors(), 3)
}

func TestEditDeleteRemapsNodeTypes(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10L0 10z"))
	test.Error(t, s.SetNodeType(3, Smooth))
	test.Error(t, s.DeleteAnchors(1))
	test.T(t, s.NodeType(3), Cusp)
	test.T(t, s.NodeType(2), Smooth)
}

func TestEditDeleteErrors(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10z"))
	test.That(t, s.DeleteAnchors(3) != nil)
	test.That(t, s.DeleteAnchors(-1) != nil)

	// the whole batch is rejected when fewer than 2 anchors would remain
	err := s.DeleteAnchors(0, 1)
	test.That(t, err != nil)
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0L10 10z")))

	test.Error(t, s.DeleteAnchors())

	// a 2-anchor path cannot shrink further
	s = Edit(MustParseSVG("M0 0L10 0"))
	test.That(t, s.DeleteAnchors(1) != nil)
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0")))
}

func TestEditMoveAnchor(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C2 2 8 2 10 0C12 -2 18 -2 20 0"))
	test.Error(t, s.MoveAnchor(1, Point{11.0, 1.0}))

	anchors := s.Path().Anchors()
	test.That(t, anchors[1].Pos.Equals(Point{11.0, 1.0}))
	test.That(t, anchors[1].In.Equals(Point{9.0, 3.0}))
	test.That(t, anchors[1].Out.Equals(Point{13.0, -1.0}))

	test.That(t, s.MoveAnchor(5, Point{}) != nil)
}

func TestEditMoveAnchorZeroClosed(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10z"))
	test.Error(t, s.MoveAnchor(0, Point{1.0, 1.0}))
	test.That(t, s.Path().Equals(MustParseSVG("M1 1L10 0L10 10z")))

	s = Edit(MustParseSVG("M0 0L10 0C10 10 5 10 0 0z"))
	test.Error(t, s.MoveAnchor(0, Point{2.0, 0.0}))
	test.That(t, s.Path().Equals(MustParseSVG("M2 0L10 0C10 10 5 10 2 0z")))
}

func TestEditMoveAnchorReenforcesNeighbors(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C0 0 10 0 10 0C10 0 20 0 20 0"))
	test.Error(t, s.SetNodeType(1, AutoSmooth))
	test.Error(t, s.MoveAnchor(2, Point{20.0, 10.0}))

	anchors := s.Path().Anchors()
	pos := anchors[1].Pos
	dir := Point{20.0, 10.0}.Norm(1.0)
	length := math.Min(10.0, math.Sqrt(200.0)) / 3.0
	test.That(t, anchors[1].In.Equals(pos.Sub(dir.Mul(length))))
	test.That(t, anchors[1].Out.Equals(pos.Add(dir.Mul(length))))
}

func TestEditMoveHandleCusp(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C2 2 8 2 10 0C12 -2 18 -2 20 0"))
	test.Error(t, s.MoveHandle(1, false, Point{13.0, 3.0}))

	anchors := s.Path().Anchors()
	test.That(t, anchors[1].Out.Equals(Point{13.0, 3.0}))
	test.That(t, anchors[1].In.Equals(Point{8.0, 2.0}))
}

func TestEditMoveHandleSmooth(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C2 2 8 2 10 0C12 -2 18 -2 20 0"))
	test.Error(t, s.SetNodeType(1, Smooth))
	test.Error(t, s.MoveHandle(1, false, Point{12.0, 2.0}))

	// the incoming handle follows in the opposite direction, keeping its length
	anchors := s.Path().Anchors()
	test.That(t, anchors[1].Out.Equals(Point{12.0, 2.0}))
	test.That(t, anchors[1].In.Equals(Point{8.0, -2.0}))
}

func TestEditMoveHandleAutoSmooth(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C0 0 10 0 10 0C10 0 20 10 20 10"))
	test.Error(t, s.SetNodeType(1, AutoSmooth))
	before := s.Path().Copy()

	// auto-smooth handles are derived from the neighbors, dragging one has no
	// lasting effect
	test.Error(t, s.MoveHandle(1, false, Point{15.0, 5.0}))
	test.That(t, s.Path().Equals(before))
}

func TestEditMoveHandleErrors(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0"))
	test.That(t, s.MoveHandle(0, true, Point{}) != nil)
	test.That(t, s.MoveHandle(1, false, Point{}) != nil)
}

func TestEditSetNodeType(t *testing.T) {
	s := Edit(MustParseSVG("M0 0C2 2 8 4 10 0C12 0 18 -2 20 0"))
	test.T(t, s.NodeType(1), Cusp)

	test.Error(t, s.SetNodeType(1, Smooth))
	test.T(t, s.NodeType(1), Smooth)

	anchors := s.Path().Anchors()
	in := anchors[1].In.Sub(anchors[1].Pos)
	out := anchors[1].Out.Sub(anchors[1].Pos)
	test.Float(t, in.PerpDot(out), 0.0)

	test.Error(t, s.SetNodeType(1, Cusp))
	test.T(t, s.NodeType(1), Cusp)

	test.That(t, s.SetNodeType(7, Smooth) != nil)
}

func TestEditMakeAll(t *testing.T) {
	orig := MustParseSVG("M0 0L10 0L10 10z")
	s := Edit(orig)
	s.MakeAllCurves()
	kind, _ := s.Path().ClosingSegment()
	test.T(t, kind, ExplicitCurve)
	for _, anchor := range s.Path().Anchors() {
		test.That(t, anchor.HasIn && anchor.HasOut)
	}

	s.MakeAllLines()
	test.That(t, s.Path().Equals(orig))
}

func TestEditMakeSelected(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10L0 10z"))
	s.Selection().Select(0, false)
	s.Selection().Select(1, true)
	s.MakeSelectedCurves()

	anchors := s.Path().Anchors()
	test.That(t, anchors[0].HasOut)
	test.That(t, anchors[1].HasIn)
	test.That(t, !anchors[1].HasOut)
	test.That(t, !anchors[2].HasIn)

	// one selected endpoint is not enough
	s = Edit(MustParseSVG("M0 0L10 0L10 10L0 10z"))
	s.Selection().Select(1, false)
	s.MakeSelectedCurves()
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0L10 10L0 10z")))

	// the closing segment converts when the last and first anchors are selected
	s = Edit(MustParseSVG("M0 0L10 0L10 10L0 10z"))
	s.Selection().Select(3, false)
	s.Selection().Select(0, true)
	s.MakeSelectedCurves()
	kind, _ := s.Path().ClosingSegment()
	test.T(t, kind, ExplicitCurve)

	s.MakeSelectedLines()
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L10 0L10 10L0 10z")))
}

func TestEditDrag(t *testing.T) {
	orig := MustParseSVG("M0 0L10 0L10 10z")
	s := Edit(orig)

	s.BeginDrag()
	test.Error(t, s.MoveAnchor(1, Point{15.0, 5.0}))
	test.That(t, !s.Path().Equals(orig))
	s.CancelDrag()
	test.That(t, s.Path().Equals(orig))

	s.BeginDrag()
	test.Error(t, s.MoveAnchor(1, Point{15.0, 5.0}))
	s.EndDrag()
	s.CancelDrag() // no-op after commit
	test.That(t, s.Path().Equals(MustParseSVG("M0 0L15 5L10 10z")))
}

func TestEditFinish(t *testing.T) {
	s := Edit(MustParseSVG("M0 0L10 0L10 10z"))
	p, bounds := s.Finish()
	test.That(t, p.Equals(MustParseSVG("M0 0L10 0L10 10z")))
	test.Float(t, bounds.W, 10.0)
	test.Float(t, bounds.H, 10.0)
}

package pathedit

import "math"

// SegmentHit identifies a path segment by its two end anchors in path order.
// For the closing segment of a closed path Start is the last anchor and End
// is 0.
type SegmentHit struct {
	Start, End int
}

// HandleHit identifies a bezier handle by its anchor and side.
type HandleHit struct {
	Anchor   int
	Incoming bool
}

// FindClosestSegment returns the segment closest to the query point, or
// false if none is within the threshold. The threshold must be given in path
// coordinates; an input layer working in screen pixels divides its pixel
// tolerance by the zoom factor first. Cubic bezier distance is approximated
// by sampling.
func FindClosestSegment(p *Path, q Point, threshold float64) (SegmentHit, bool) {
	_, closing := p.ClosingSegment()
	n := p.NumAnchors()

	best := SegmentHit{}
	bestDistSq := math.Inf(1)
	anchor := 0 // anchor at the start of the current command
	for s := p.Scanner(); s.Scan(); {
		var distSq float64
		var hit SegmentHit
		switch s.Cmd() {
		case LineToCmd:
			distSq = distanceSqPointSegment(q, s.Start(), s.End())
			hit = SegmentHit{anchor, anchor + 1}
			anchor++
		case CubeToCmd:
			distSq = distanceSqPointCubic(q, s.Start(), s.CP1(), s.CP2(), s.End())
			if s.Index() == closing {
				hit = SegmentHit{n - 1, 0}
			} else {
				hit = SegmentHit{anchor, anchor + 1}
				anchor++
			}
		case CloseCmd:
			if closing != -1 {
				continue // the explicit closing curve already covered it
			}
			distSq = distanceSqPointSegment(q, s.Start(), s.End())
			hit = SegmentHit{n - 1, 0}
		default:
			continue
		}
		if distSq < bestDistSq {
			bestDistSq = distSq
			best = hit
		}
	}
	if threshold*threshold < bestDistSq {
		return SegmentHit{}, false
	}
	return best, true
}

// FindClosestAnchor returns the index of the anchor closest to the query
// point, or false if none is within the threshold.
func FindClosestAnchor(p *Path, q Point, threshold float64) (int, bool) {
	best := -1
	bestDistSq := math.Inf(1)
	for _, anchor := range p.Anchors() {
		d := q.Sub(anchor.Pos)
		if distSq := d.Dot(d); distSq < bestDistSq {
			bestDistSq = distSq
			best = anchor.Index
		}
	}
	if best == -1 || threshold*threshold < bestDistSq {
		return -1, false
	}
	return best, true
}

// FindClosestHandle returns the handle closest to the query point, or false
// if none is within the threshold.
func FindClosestHandle(p *Path, q Point, threshold float64) (HandleHit, bool) {
	best := HandleHit{Anchor: -1}
	bestDistSq := math.Inf(1)
	for _, anchor := range p.Anchors() {
		if anchor.HasIn {
			d := q.Sub(anchor.In)
			if distSq := d.Dot(d); distSq < bestDistSq {
				bestDistSq = distSq
				best = HandleHit{anchor.Index, true}
			}
		}
		if anchor.HasOut {
			d := q.Sub(anchor.Out)
			if distSq := d.Dot(d); distSq < bestDistSq {
				bestDistSq = distSq
				best = HandleHit{anchor.Index, false}
			}
		}
	}
	if best.Anchor == -1 || threshold*threshold < bestDistSq {
		return HandleHit{Anchor: -1}, false
	}
	return best, true
}

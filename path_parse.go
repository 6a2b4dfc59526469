package pathedit

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
)

func skipCommaWhitespace(path []byte) int {
	i := 0
	for i < len(path) && (path[i] == ' ' || path[i] == ',' || path[i] == '\n' || path[i] == '\r' || path[i] == '\t') {
		i++
	}
	return i
}

type pathParser struct {
	path []byte
	i    int
	err  error
}

func (z *pathParser) num() float64 {
	if z.err != nil {
		return 0.0
	}
	z.i += skipCommaWhitespace(z.path[z.i:])
	f, n := strconv.ParseFloat(z.path[z.i:])
	if n == 0 {
		z.err = fmt.Errorf("bad path: expected number at position %d", z.i+1)
		return 0.0
	}
	z.i += n
	return f
}

// MustParseSVG parses SVG path data and panics on failure.
func MustParseSVG(s string) *Path {
	p, err := ParseSVGPath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// ParseSVGPath parses SVG path data into a path. Quadratic beziers are
// elevated to cubics; arcs are not supported as the path model has no arc
// command. Only a single subpath is allowed.
func ParseSVGPath(s string) (*Path, error) {
	z := &pathParser{path: []byte(s)}
	p := &Path{}

	var prevCmd byte
	cp := Point{} // previous control point for S/T
	for z.i < len(z.path) {
		z.i += skipCommaWhitespace(z.path[z.i:])
		if z.i == len(z.path) {
			break
		}
		cmd := prevCmd
		if 'A' <= z.path[z.i] {
			cmd = z.path[z.i]
			z.i++
		}
		if p.Closed() {
			return nil, fmt.Errorf("bad path: command after close at position %d", z.i)
		}

		pos := p.Pos()
		switch cmd {
		case 'M', 'm':
			if len(p.d) != 0 {
				return nil, fmt.Errorf("bad path: multiple subpaths are not supported")
			}
			a, b := z.num(), z.num()
			if cmd == 'm' {
				a += pos.X
				b += pos.Y
			}
			if z.err == nil {
				p.MoveTo(a, b)
			}
		case 'Z', 'z':
			p.Close()
		case 'L', 'l':
			a, b := z.num(), z.num()
			if cmd == 'l' {
				a += pos.X
				b += pos.Y
			}
			if z.err == nil {
				p.LineTo(a, b)
			}
		case 'H', 'h':
			a := z.num()
			if cmd == 'h' {
				a += pos.X
			}
			if z.err == nil {
				p.LineTo(a, pos.Y)
			}
		case 'V', 'v':
			b := z.num()
			if cmd == 'v' {
				b += pos.Y
			}
			if z.err == nil {
				p.LineTo(pos.X, b)
			}
		case 'C', 'c':
			a, b, c, d, e, f := z.num(), z.num(), z.num(), z.num(), z.num(), z.num()
			if cmd == 'c' {
				a += pos.X
				b += pos.Y
				c += pos.X
				d += pos.Y
				e += pos.X
				f += pos.Y
			}
			if z.err == nil {
				p.CubeTo(a, b, c, d, e, f)
				cp = Point{c, d}
			}
		case 'S', 's':
			c, d, e, f := z.num(), z.num(), z.num(), z.num()
			if cmd == 's' {
				c += pos.X
				d += pos.Y
				e += pos.X
				f += pos.Y
			}
			a, b := pos.X, pos.Y
			if prevCmd == 'C' || prevCmd == 'c' || prevCmd == 'S' || prevCmd == 's' {
				a, b = 2.0*pos.X-cp.X, 2.0*pos.Y-cp.Y
			}
			if z.err == nil {
				p.CubeTo(a, b, c, d, e, f)
				cp = Point{c, d}
			}
		case 'Q', 'q':
			a, b, c, d := z.num(), z.num(), z.num(), z.num()
			if cmd == 'q' {
				a += pos.X
				b += pos.Y
				c += pos.X
				d += pos.Y
			}
			if z.err == nil {
				quadTo(p, pos, Point{a, b}, Point{c, d})
				cp = Point{a, b}
			}
		case 'T', 't':
			c, d := z.num(), z.num()
			if cmd == 't' {
				c += pos.X
				d += pos.Y
			}
			a, b := pos.X, pos.Y
			if prevCmd == 'Q' || prevCmd == 'q' || prevCmd == 'T' || prevCmd == 't' {
				a, b = 2.0*pos.X-cp.X, 2.0*pos.Y-cp.Y
			}
			if z.err == nil {
				quadTo(p, pos, Point{a, b}, Point{c, d})
				cp = Point{a, b}
			}
		case 'A', 'a':
			return nil, fmt.Errorf("bad path: arc commands are not supported")
		default:
			return nil, fmt.Errorf("bad path: unknown command '%c' at position %d", cmd, z.i)
		}
		if z.err != nil {
			return nil, z.err
		}
		prevCmd = cmd
	}
	return p, nil
}

// quadTo adds a quadratic bezier as a degree-elevated cubic.
func quadTo(p *Path, start, cp, end Point) {
	cp1 := start.Interpolate(cp, 2.0/3.0)
	cp2 := end.Interpolate(cp, 2.0/3.0)
	p.CubeTo(cp1.X, cp1.Y, cp2.X, cp2.Y, end.X, end.Y)
}

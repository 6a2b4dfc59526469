package pathedit

// PathScanner scans the path commands in order.
type PathScanner struct {
	p *Path
	i int // index of the end marker of the current command
}

// Scanner returns a scanner positioned before the first command.
func (p *Path) Scanner() *PathScanner {
	return &PathScanner{p, -1}
}

// Scan advances to the next command and returns true if there is one.
func (s *PathScanner) Scan() bool {
	if s.i+1 < len(s.p.d) {
		s.i += cmdLen(s.p.d[s.i+1])
		return true
	}
	return false
}

// Cmd returns the current command.
func (s *PathScanner) Cmd() float64 {
	return s.p.d[s.i]
}

// Index returns the index into the path data at which the current command starts.
func (s *PathScanner) Index() int {
	return s.i - cmdLen(s.p.d[s.i]) + 1
}

// Values returns the coordinate values of the current command.
func (s *PathScanner) Values() []float64 {
	return s.p.d[s.Index()+1 : s.i]
}

// Start returns the start point of the current command, ie. the end point of the previous command.
func (s *PathScanner) Start() Point {
	i := s.i - cmdLen(s.p.d[s.i])
	if i < 0 {
		return Point{}
	}
	return Point{s.p.d[i-2], s.p.d[i-1]}
}

// End returns the end point of the current command. For a Close command this is the first anchor.
func (s *PathScanner) End() Point {
	return Point{s.p.d[s.i-2], s.p.d[s.i-1]}
}

// CP1 returns the first control point of a cubic bezier.
func (s *PathScanner) CP1() Point {
	if s.p.d[s.i] != CubeToCmd {
		panic("must be cubic bezier")
	}
	i := s.Index()
	return Point{s.p.d[i+1], s.p.d[i+2]}
}

// CP2 returns the second control point of a cubic bezier.
func (s *PathScanner) CP2() Point {
	if s.p.d[s.i] != CubeToCmd {
		panic("must be cubic bezier")
	}
	i := s.Index()
	return Point{s.p.d[i+3], s.p.d[i+4]}
}

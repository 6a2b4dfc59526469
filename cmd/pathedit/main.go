package main

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pathedit/pathedit"
	"github.com/tdewolff/argp"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

type ShowOptions struct {
	Width   int     `default:"256" desc:"Image width"`
	Scale   int     `default:"1" desc:"Image scale"`
	Ratio   float64 `desc:"Image width/height ratio"`
	Anchors bool    `short:"a" desc:"Mark anchors in the image"`
	Output  string  `short:"o" desc:"Output filename"`
}

type EditOptions struct {
	Curves    bool   `desc:"Convert all line segments to curves"`
	Lines     bool   `desc:"Convert all curve segments to lines"`
	Split     string `short:"s" desc:"Split segment between two adjacent anchors, eg. 1,2"`
	Delete    string `short:"d" desc:"Delete anchors, eg. 0,3"`
	Type      string `short:"t" desc:"Set node type, eg. 2=smooth"`
	Translate string `desc:"Translate the path, eg. 10,-5"`
}

type SmoothenOptions struct {
	Closed bool `short:"c" desc:"Close the polyline before smoothing"`
}

var (
	showOptions     ShowOptions
	editOptions     EditOptions
	smoothenOptions SmoothenOptions
)

func main() {
	root := argp.New("Toolkit for editing SVG path data")
	show := root.AddCommand(show, "show", "Show path anchors in terminal or output to image")
	show.AddStruct(&showOptions)

	edit := root.AddCommand(edit, "edit", "Apply edit operations to a path")
	edit.AddStruct(&editOptions)

	smoothen := root.AddCommand(smoothen, "smoothen", "Fit a smooth path through a list of points")
	smoothen.AddStruct(&smoothenOptions)

	root.Parse()
	root.PrintHelp()
}

func show(args []string) error {
	terminal := showOptions.Output == "" || showOptions.Output == "-"
	if len(args) != 1 {
		return fmt.Errorf("must pass one SVG path")
	}

	p, err := pathedit.ParseSVGPath(args[0])
	if err != nil {
		return err
	}
	if p.Empty() {
		return fmt.Errorf("path is empty")
	}

	closing, _ := p.ClosingSegment()
	fmt.Printf("Path: %v\n", p)
	fmt.Printf("Bounds: %v\n", p.Bounds())
	fmt.Printf("Closed: %v (%s)\n", p.Closed(), closingName(closing))
	fmt.Printf("\nAnchors:\n")
	for _, anchor := range p.Anchors() {
		fmt.Printf("  %2d  pos=%v", anchor.Index, anchor.Pos)
		if anchor.HasIn {
			fmt.Printf("  in=%v", anchor.In)
		}
		if anchor.HasOut {
			fmt.Printf("  out=%v", anchor.Out)
		}
		fmt.Printf("\n")
	}

	if terminal && showOptions.Output == "" {
		return nil
	}

	img, err := render(p, showOptions.Width, showOptions.Anchors)
	if err != nil {
		return err
	}

	if showOptions.Ratio == 0.0 {
		if terminal {
			showOptions.Ratio = 2.0
		} else {
			showOptions.Ratio = 1.0
		}
	}

	if showOptions.Ratio != 1.0 {
		origImg := img
		origRect := origImg.Bounds()
		rect := image.Rect(0, 0, int(float64(origRect.Max.X)*showOptions.Ratio+0.5), origRect.Max.Y)
		img = image.NewRGBA(rect)
		draw.ApproxBiLinear.Scale(img, rect, origImg, origRect, draw.Over, nil)
	}

	if terminal {
		if 80 < img.Bounds().Max.X {
			return fmt.Errorf("width cannot exceed 80 for terminal output")
		}
		printASCII(img)
		return nil
	}

	if showOptions.Scale != 1 {
		origImg := img
		origRect := origImg.Bounds()
		rect := image.Rect(0, 0, origRect.Max.X*showOptions.Scale, origRect.Max.Y*showOptions.Scale)
		img = image.NewRGBA(rect)
		draw.NearestNeighbor.Scale(img, rect, origImg, origRect, draw.Over, nil)
	}

	ext := filepath.Ext(showOptions.Output)
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" && ext != ".gif" {
		return fmt.Errorf("output extension must be PNG, JPG, or GIF")
	}

	w, err := os.Create(showOptions.Output)
	if err != nil {
		return err
	}
	defer w.Close()

	switch ext {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, nil)
	case ".gif":
		err = gif.Encode(w, img, nil)
	}
	return err
}

func edit(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("must pass one SVG path")
	}

	p, err := pathedit.ParseSVGPath(args[0])
	if err != nil {
		return err
	}

	if editOptions.Translate != "" {
		xy, err := parseFloats(editOptions.Translate, 2)
		if err != nil {
			return fmt.Errorf("bad translate: %v", err)
		}
		p = p.Translate(xy[0], xy[1])
	}

	s := pathedit.Edit(p)
	if editOptions.Type != "" {
		anchor, t, err := parseNodeType(editOptions.Type)
		if err != nil {
			return err
		}
		if err := s.SetNodeType(anchor, t); err != nil {
			return err
		}
	}
	if editOptions.Curves {
		s.MakeAllCurves()
	}
	if editOptions.Lines {
		s.MakeAllLines()
	}
	if editOptions.Split != "" {
		ab, err := parseInts(editOptions.Split, 2)
		if err != nil {
			return fmt.Errorf("bad split: %v", err)
		}
		if err := s.SplitSegment(ab[0], ab[1]); err != nil {
			return err
		}
	}
	if editOptions.Delete != "" {
		anchors, err := parseInts(editOptions.Delete, 0)
		if err != nil {
			return fmt.Errorf("bad delete: %v", err)
		}
		if err := s.DeleteAnchors(anchors...); err != nil {
			return err
		}
	}

	q, _ := s.Finish()
	fmt.Println(q)
	return nil
}

func smoothen(args []string) error {
	if len(args) == 0 || len(args)%2 != 0 {
		return fmt.Errorf("must pass an even number of coordinates")
	}

	polyline := &pathedit.Polyline{}
	for i := 0; i < len(args); i += 2 {
		x, err := strconv.ParseFloat(args[i], 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %s: %v", args[i], err)
		}
		y, err := strconv.ParseFloat(args[i+1], 64)
		if err != nil {
			return fmt.Errorf("bad coordinate %s: %v", args[i+1], err)
		}
		polyline.Add(x, y)
	}
	if smoothenOptions.Closed {
		polyline.Close()
	}

	fmt.Println(polyline.Smoothen())
	return nil
}

func closingName(kind pathedit.ClosingKind) string {
	switch kind {
	case pathedit.ImplicitLine:
		return "implicit line"
	case pathedit.ExplicitCurve:
		return "explicit curve"
	}
	return "open"
}

func parseInts(s string, n int) ([]int, error) {
	fields := strings.Split(s, ",")
	if n != 0 && len(fields) != n {
		return nil, fmt.Errorf("expected %d comma-separated integers", n)
	}
	is := make([]int, len(fields))
	for i, field := range fields {
		var err error
		if is[i], err = strconv.Atoi(strings.TrimSpace(field)); err != nil {
			return nil, err
		}
	}
	return is, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	fields := strings.Split(s, ",")
	if n != 0 && len(fields) != n {
		return nil, fmt.Errorf("expected %d comma-separated numbers", n)
	}
	fs := make([]float64, len(fields))
	for i, field := range fields {
		var err error
		if fs[i], err = strconv.ParseFloat(strings.TrimSpace(field), 64); err != nil {
			return nil, err
		}
	}
	return fs, nil
}

func parseNodeType(s string) (int, pathedit.NodeType, error) {
	anchorStr, name, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("bad type: expected anchor=type")
	}
	anchor, err := strconv.Atoi(anchorStr)
	if err != nil {
		return 0, 0, fmt.Errorf("bad type: %v", err)
	}
	switch strings.ToLower(name) {
	case "cusp":
		return anchor, pathedit.Cusp, nil
	case "smooth":
		return anchor, pathedit.Smooth, nil
	case "autosmooth", "auto":
		return anchor, pathedit.AutoSmooth, nil
	}
	return 0, 0, fmt.Errorf("bad type: unknown node type %s", name)
}

// render rasterizes the path into a filled image of the given width, marking
// the anchors when asked. Cubic beziers are flattened by sampling.
func render(p *pathedit.Path, width int, anchors bool) (*image.RGBA, error) {
	if 2048 < width {
		return nil, fmt.Errorf("width cannot exceed 2048")
	}

	bounds := p.Bounds()
	if bounds.W <= 0.0 && bounds.H <= 0.0 {
		return nil, fmt.Errorf("path has no extent")
	}

	padding := 0.1 * (bounds.W + bounds.H) / 2.0
	bounds.X -= padding
	bounds.Y -= padding
	bounds.W += 2.0 * padding
	bounds.H += 2.0 * padding

	f := float64(width) / bounds.W
	height := int(f*bounds.H + 0.5)

	// path coordinates are y-up, images are y-down
	toImg := func(q pathedit.Point) (float32, float32) {
		return float32(f * (q.X - bounds.X)), float32(f * (bounds.Y + bounds.H - q.Y))
	}

	ras := vector.NewRasterizer(width, height)
	for s := p.Scanner(); s.Scan(); {
		switch s.Cmd() {
		case pathedit.MoveToCmd:
			ras.MoveTo(toImg(s.End()))
		case pathedit.LineToCmd:
			ras.LineTo(toImg(s.End()))
		case pathedit.CubeToCmd:
			start, cp1, cp2, end := s.Start(), s.CP1(), s.CP2(), s.End()
			const samples = 32
			for i := 1; i <= samples; i++ {
				t := float64(i) / float64(samples)
				u := 1.0 - t
				q := start.Mul(u * u * u)
				q = q.Add(cp1.Mul(3.0 * u * u * t))
				q = q.Add(cp2.Mul(3.0 * u * t * t))
				q = q.Add(end.Mul(t * t * t))
				ras.LineTo(toImg(q))
			}
		case pathedit.CloseCmd:
			ras.ClosePath()
		}
	}

	rect := image.Rect(0, 0, width, height)
	img := image.NewRGBA(rect)
	draw.Draw(img, rect, image.NewUniform(color.White), image.Point{}, draw.Over)
	ras.Draw(img, rect, image.NewUniform(color.Gray{128}), image.Point{})

	if anchors {
		mark := color.RGBA{255, 0, 0, 255}
		for _, anchor := range p.Anchors() {
			x, y := toImg(anchor.Pos)
			markSquare(img, int(x+0.5), int(y+0.5), 2, mark)
		}
	}
	return img, nil
}

func markSquare(img *image.RGBA, x, y, r int, c color.RGBA) {
	for j := y - r; j <= y+r; j++ {
		for i := x - r; i <= x+r; i++ {
			if image.Pt(i, j).In(img.Bounds()) {
				img.SetRGBA(i, j, c)
			}
		}
	}
}

func printASCII(img image.Image) {
	palette := []byte("$@B%8&WM#*oahkbdpqwmZO0QLCJUYXzcvunxrjft/\\|()1{}[]?-_+~<>i!lI;:,\"^`'. ")

	size := img.Bounds().Max
	for j := 0; j < size.Y; j++ {
		for i := 0; i < size.X; i++ {
			r, g, b, _ := img.At(i, j).RGBA()
			y, _, _ := color.RGBToYCbCr(uint8(r>>8), uint8(g>>8), uint8(b>>8))
			idx := int(float64(y)/255.0*float64(len(palette)-1) + 0.5)
			fmt.Print(string(palette[idx]))
		}
		fmt.Print("\n")
	}
}

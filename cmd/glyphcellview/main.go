// Command glyphcellview renders text through the glyphcell outline
// pipeline and rasterizes the result, as a way to exercise and inspect
// the packed cell grid outside of a GPU shader.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/unixpickle/model3d/model2d"

	"github.com/unixpickle/glyphcell/outline"
)

func main() {
	fontPath := flag.String("font", "", "path to a TTF/OTF font file")
	text := flag.String("text", "", "text to render")
	outPath := flag.String("out", "", "output image path (.png)")
	size := flag.Float64("size", 64, "target ascent (baseline to top) in model units")
	pixelsPerUnit := flag.Float64("scale", 4, "pixels per model unit when rasterizing")
	backend := flag.String("backend", "tt", "outline source: \"tt\" (freetype/truetype) or \"sfnt\" (x/image/font/sfnt)")
	kerning := flag.Bool("kerning", true, "enable kerning")
	flag.Parse()

	if *fontPath == "" || *text == "" || *outPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*fontPath)
	if err != nil {
		log.Fatalf("read font: %v", err)
	}
	pf, err := loadFont(data)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}

	glyphs, _ := shapeText(pf, *text, *kerning)
	if len(glyphs) == 0 {
		log.Fatalf("no glyphs to render")
	}

	outlines, err := buildOutlines(pf, data, glyphs, *backend)
	if err != nil {
		log.Fatalf("build outlines: %v", err)
	}
	if len(outlines) == 0 {
		log.Fatalf("every glyph produced an empty outline")
	}

	for i, o := range outlines {
		fmt.Printf("glyph %d: %d points, %d contours, %dx%d cell grid\n",
			i, len(o.Points), len(o.Contours), o.CellCountX, o.CellCountY)
	}

	modelScale := clampNonNegative(*size) / pf.ascentUnits()
	solid := buildSolid(outlines, modelScale)

	if err := model2d.Rasterize(*outPath, solid, *pixelsPerUnit); err != nil {
		log.Fatalf("rasterize: %v", err)
	}
	fmt.Printf("wrote %s\n", *outPath)
}

// buildOutlines converts each positioned glyph into a packed outline.Outline,
// using the freetype-backed decomposer or the x/image/font/sfnt-backed
// one depending on backend. Glyphs with no contours (e.g. space) are
// silently skipped.
func buildOutlines(pf *parsedFont, data []byte, glyphs []positionedGlyph, backend string) ([]*outline.Outline, error) {
	var outlines []*outline.Outline

	switch backend {
	case "sfnt":
		f, err := sfnt.Parse(data)
		if err != nil {
			return nil, err
		}
		ppem := fixed.I(int(pf.unitsPerEm()))
		for _, g := range glyphs {
			w, err := newSfntWalker(f, sfnt.GlyphIndex(g.index), ppem, fixed.Int26_6(g.penX*64))
			if err != nil {
				return nil, err
			}
			if len(w.segs) == 0 {
				continue
			}
			o, err := outline.Convert(w)
			if err != nil {
				return nil, err
			}
			outlines = append(outlines, o)
		}
	default:
		fixedScale := fixed.Int26_6(int32(pf.unitsPerEm() * 64))
		for _, g := range glyphs {
			w, err := newTTWalker(pf.ttFont, fixedScale, g.index, fixed.Int26_6(g.penX*64))
			if err != nil {
				return nil, err
			}
			if len(w.gb.Points) == 0 {
				continue
			}
			o, err := outline.Convert(w)
			if err != nil {
				return nil, err
			}
			outlines = append(outlines, o)
		}
	}

	return outlines, nil
}

// buildSolid returns a model2d.Solid that samples the packed cell grid
// of whichever glyph outline (in font-unit space) contains a given
// model-space query point, after undoing modelScale.
func buildSolid(outlines []*outline.Outline, modelScale float64) model2d.Solid {
	min := model2d.Coord{X: outlines[0].BBox.MinX, Y: outlines[0].BBox.MinY}
	max := model2d.Coord{X: outlines[0].BBox.MaxX, Y: outlines[0].BBox.MaxY}
	for _, o := range outlines[1:] {
		if o.BBox.MinX < min.X {
			min.X = o.BBox.MinX
		}
		if o.BBox.MinY < min.Y {
			min.Y = o.BBox.MinY
		}
		if o.BBox.MaxX > max.X {
			max.X = o.BBox.MaxX
		}
		if o.BBox.MaxY > max.Y {
			max.Y = o.BBox.MaxY
		}
	}
	min = min.Scale(modelScale)
	max = max.Scale(modelScale)

	return model2d.CheckedFuncSolid(min, max, func(c model2d.Coord) bool {
		p := outline.Point{X: c.X / modelScale, Y: c.Y / modelScale}
		for _, o := range outlines {
			if o.CellCountX == 0 {
				continue
			}
			if o.BBox.Contains(p) && outline.Sample(o, p) {
				return true
			}
		}
		return false
	})
}

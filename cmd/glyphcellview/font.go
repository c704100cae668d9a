package main

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/go-text/typesetting/di"
	gotextfont "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/go-text/typesetting/shaping"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/math/fixed"
)

var hbFeatureTags = struct {
	kern ot.Tag
}{
	kern: ot.MustNewTag("kern"),
}

// parsedFont holds a font's outline data plus whatever auxiliary state
// HarfBuzz shaping needs.
type parsedFont struct {
	ttFont *truetype.Font
	ascent float64
	hbFace *gotextfont.Face
}

func loadFont(data []byte) (*parsedFont, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	pf := &parsedFont{ttFont: ttf}
	if asc, ok := parseOS2TypoAscender(data); ok && asc > 0 {
		pf.ascent = asc
	}
	if hbFace, err := gotextfont.ParseTTF(bytes.NewReader(data)); err == nil {
		pf.hbFace = hbFace
	}
	return pf, nil
}

// unitsPerEm returns the font's design grid resolution.
func (pf *parsedFont) unitsPerEm() float64 {
	return float64(pf.ttFont.FUnitsPerEm())
}

// ascentUnits returns the font's ascent in font units, falling back to
// the glyph bounding box and then the em square when OS/2 is absent.
func (pf *parsedFont) ascentUnits() float64 {
	if pf.ascent > 0 {
		return pf.ascent
	}
	b := pf.ttFont.Bounds(fixed.Int26_6(pf.ttFont.FUnitsPerEm()))
	if b.Max.Y > 0 {
		return float64(b.Max.Y)
	}
	return pf.unitsPerEm()
}

type positionedGlyph struct {
	index truetype.Index
	// penX is the glyph's horizontal offset, in font units.
	penX float64
}

// shapeText lays out s with HarfBuzz when the font exposes an
// OpenType face, falling back to a plain left-to-right walk with
// optional TrueType kerning otherwise. It returns each glyph's index
// and pen offset in font units, plus the total advance.
func shapeText(pf *parsedFont, s string, kerning bool) ([]positionedGlyph, float64) {
	if glyphs, advance, ok := shapeWithHarfBuzz(pf, s, kerning); ok {
		return glyphs, advance
	}
	return shapeWithTrueTypeMetrics(pf, s, kerning)
}

func shapeWithHarfBuzz(pf *parsedFont, s string, kerning bool) ([]positionedGlyph, float64, bool) {
	if pf.hbFace == nil {
		return nil, 0, false
	}
	runes := []rune(s)
	if len(runes) == 0 {
		return nil, 0, true
	}

	var features []shaping.FontFeature
	if !kerning {
		features = append(features, shaping.FontFeature{Tag: hbFeatureTags.kern, Value: 0})
	}

	shaper := shaping.HarfbuzzShaper{}
	out := shaper.Shape(shaping.Input{
		Text:         runes,
		RunStart:     0,
		RunEnd:       len(runes),
		Direction:    di.DirectionLTR,
		Face:         pf.hbFace,
		FontFeatures: features,
		Size:         fixed.I(int(pf.unitsPerEm())),
	})

	glyphs := make([]positionedGlyph, 0, len(out.Glyphs))
	penX := 0.0
	for _, g := range out.Glyphs {
		xOffset := float64(out.ToFontUnit(g.XOffset))
		glyphs = append(glyphs, positionedGlyph{
			index: truetype.Index(g.GlyphID),
			penX:  penX + xOffset,
		})
		penX += float64(out.ToFontUnit(g.XAdvance))
	}
	return glyphs, penX, true
}

func shapeWithTrueTypeMetrics(pf *parsedFont, s string, kerning bool) ([]positionedGlyph, float64) {
	ttFont := pf.ttFont
	fixedScale := fixed.Int26_6(int32(pf.unitsPerEm() * 64))

	var glyphs []positionedGlyph
	penX := 0.0
	var prev truetype.Index
	hasPrev := false
	for _, r := range s {
		idx := ttFont.Index(r)
		if kerning && hasPrev {
			k := ttFont.Kern(fixedScale, prev, idx)
			penX += float64(k) / 64.0
		}
		glyphs = append(glyphs, positionedGlyph{index: idx, penX: penX})
		adv := ttFont.HMetric(fixedScale, idx).AdvanceWidth
		penX += float64(adv) / 64.0
		prev, hasPrev = idx, true
	}
	return glyphs, penX
}

func parseOS2TypoAscender(data []byte) (float64, bool) {
	const (
		tableDirOffset = 12
		recordSize     = 16
		os2Tag         = "OS/2"
		typoAscOffset  = 68
	)
	if len(data) < tableDirOffset {
		return 0, false
	}
	numTables := int(binary.BigEndian.Uint16(data[4:6]))
	if numTables < 0 || len(data) < tableDirOffset+numTables*recordSize {
		return 0, false
	}
	for i := 0; i < numTables; i++ {
		recOff := tableDirOffset + i*recordSize
		tag := string(data[recOff : recOff+4])
		if tag != os2Tag {
			continue
		}
		tableOffset := int(binary.BigEndian.Uint32(data[recOff+8 : recOff+12]))
		tableLen := int(binary.BigEndian.Uint32(data[recOff+12 : recOff+16]))
		if tableOffset < 0 || tableLen < 0 || tableOffset+tableLen > len(data) || tableLen < typoAscOffset+2 {
			return 0, false
		}
		raw := int16(binary.BigEndian.Uint16(data[tableOffset+typoAscOffset : tableOffset+typoAscOffset+2]))
		return float64(raw), raw > 0
	}
	return 0, false
}

// clampNonNegative avoids propagating a NaN/negative -size value into
// scale math by mapping it to 0.
func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(v, 0)
}

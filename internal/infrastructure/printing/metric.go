package printing

import (
	"github.com/kitcha/docrender/internal/infrastructure/layout"
	"github.com/tdewolff/canvas"
)

const (
	// metricReferenceSize is the face size used for measuring. At 1000pt a
	// width in points equals the advance in 1000-units-per-em glyph space.
	metricReferenceSize = layout.UnitsPerEm

	ptPerMM = 72.0 / 25.4
)

// CanvasFontMetric measures text with a canvas font face.
type CanvasFontMetric struct {
	face *canvas.FontFace
}

// NewCanvasFontMetric creates a metric for the regular face of family
func NewCanvasFontMetric(family *canvas.FontFamily) *CanvasFontMetric {
	return &CanvasFontMetric{
		face: family.Face(metricReferenceSize, canvas.Black, canvas.FontRegular, canvas.FontNormal),
	}
}

// AdvanceWidth implements layout.FontMetric
func (m *CanvasFontMetric) AdvanceWidth(text string) float64 {
	return m.face.TextWidth(text) * ptPerMM
}

var _ layout.FontMetric = (*CanvasFontMetric)(nil)

func ptToMM(pt float64) float64 { return pt / ptPerMM }

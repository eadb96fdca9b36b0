package layout

import "strings"

// UnitsPerEm is the glyph-space scale FontMetric widths are normalised to.
const UnitsPerEm = 1000.0

// FontMetric reports advance widths in glyph space (1000 units per em).
// Implementations must be safe for concurrent use.
type FontMetric interface {
	AdvanceWidth(text string) float64
}

// Measure returns the rendered width of text in points.
type Measure func(text string) float64

// Line is one wrapped line: its words joined by single spaces, and its width.
type Line struct {
	Text  string
	Width float64
}

// ScaledMeasure returns a Measure for metric at size points.
func ScaledMeasure(metric FontMetric, size float64) Measure {
	return func(text string) float64 {
		return metric.AdvanceWidth(text) / UnitsPerEm * size
	}
}

// SpaceWidth is the width of a single space for metric at size points.
func SpaceWidth(metric FontMetric, size float64) float64 {
	return ScaledMeasure(metric, size)(" ")
}

// Wrap breaks text into lines no wider than maxWidth.
//
// Newlines are hard breaks. Words are separated by single spaces and empty
// words are dropped, so runs of spaces collapse. A word wider than maxWidth is
// placed alone on its own line and never split. Empty paragraphs produce no
// lines.
func Wrap(text string, measure Measure, spaceWidth, maxWidth float64) []Line {
	lines := make([]Line, 0)
	for _, paragraph := range strings.Split(text, "\n") {
		lines = wrapParagraph(lines, paragraph, measure, spaceWidth, maxWidth)
	}
	return lines
}

func wrapParagraph(lines []Line, paragraph string, measure Measure, spaceWidth, maxWidth float64) []Line {
	var (
		words   []string
		current float64
	)
	flush := func() {
		if len(words) == 0 {
			return
		}
		lines = append(lines, Line{Text: strings.Join(words, " "), Width: current})
		words = words[:0]
		current = 0
	}

	for _, word := range strings.Split(paragraph, " ") {
		if word == "" {
			continue
		}
		wordWidth := measure(word)
		candidate := wordWidth
		if len(words) > 0 {
			candidate = current + spaceWidth + wordWidth
		}
		if candidate > maxWidth && len(words) > 0 {
			flush()
			candidate = wordWidth
		}
		words = append(words, word)
		current = candidate
	}
	flush()
	return lines
}

package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedMetric gives every rune the same advance width.
type fixedMetric float64

func (m fixedMetric) AdvanceWidth(text string) float64 {
	return float64(len([]rune(text))) * float64(m)
}

// charMeasure counts each rune as one unit.
func charMeasure(text string) float64 {
	return float64(len([]rune(text)))
}

func TestWrap_Basic(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxWidth float64
		expected []Line
	}{
		{
			name:     "fits on one line",
			text:     "hello world",
			maxWidth: 20,
			expected: []Line{{Text: "hello world", Width: 11}},
		},
		{
			name:     "breaks between words",
			text:     "aaa bbb ccc",
			maxWidth: 7,
			expected: []Line{{Text: "aaa bbb", Width: 7}, {Text: "ccc", Width: 3}},
		},
		{
			name:     "hard breaks",
			text:     "one\ntwo",
			maxWidth: 100,
			expected: []Line{{Text: "one", Width: 3}, {Text: "two", Width: 3}},
		},
		{
			name:     "empty paragraphs emit nothing",
			text:     "one\n\n\ntwo\n",
			maxWidth: 100,
			expected: []Line{{Text: "one", Width: 3}, {Text: "two", Width: 3}},
		},
		{
			name:     "consecutive spaces collapse",
			text:     "a   b  c",
			maxWidth: 100,
			expected: []Line{{Text: "a b c", Width: 5}},
		},
		{
			name:     "over-wide word sits alone",
			text:     "hi extraordinarily ok",
			maxWidth: 5,
			expected: []Line{
				{Text: "hi", Width: 2},
				{Text: "extraordinarily", Width: 15},
				{Text: "ok", Width: 2},
			},
		},
		{
			name:     "zero width puts every word on its own line",
			text:     "a b c",
			maxWidth: 0,
			expected: []Line{{Text: "a", Width: 1}, {Text: "b", Width: 1}, {Text: "c", Width: 1}},
		},
		{
			name:     "negative width puts every word on its own line",
			text:     "a b",
			maxWidth: -10,
			expected: []Line{{Text: "a", Width: 1}, {Text: "b", Width: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Wrap(tt.text, charMeasure, 1, tt.maxWidth))
		})
	}
}

func TestWrap_EmptyText(t *testing.T) {
	for _, text := range []string{"", " ", "\n", "  \n  "} {
		lines := Wrap(text, charMeasure, 1, 100)
		assert.NotNil(t, lines)
		assert.Empty(t, lines, "text %q", text)
	}
}

func TestWrap_WidthInvariant(t *testing.T) {
	text := "The quick brown fox jumps over the lazy dog while a supercalifragilistic word " +
		"tests the overflow rule\nand a second paragraph keeps going for a while longer"

	for _, maxWidth := range []float64{1, 5, 12, 20, 37, 80, 500} {
		for _, line := range Wrap(text, charMeasure, 1, maxWidth) {
			if line.Width > maxWidth {
				assert.NotContains(t, line.Text, " ",
					"line %q exceeds %v but holds more than one word", line.Text, maxWidth)
			}
			assert.Equal(t, charMeasure(line.Text), line.Width)
		}
	}
}

func TestWrap_Deterministic(t *testing.T) {
	text := "alpha beta gamma delta epsilon\nzeta eta theta"
	first := Wrap(text, charMeasure, 1, 12)
	second := Wrap(text, charMeasure, 1, 12)
	assert.Equal(t, first, second)
}

func TestWrap_PreservesWordOrder(t *testing.T) {
	text := "alpha  beta gamma delta\n\nepsilon zeta   eta theta iota"
	lines := Wrap(text, charMeasure, 1, 11)

	var got []string
	for _, line := range lines {
		got = append(got, strings.Split(line.Text, " ")...)
	}
	assert.Equal(t, strings.Fields(text), got)
}

func TestScaledMeasure(t *testing.T) {
	metric := fixedMetric(500)

	measure := ScaledMeasure(metric, 12)
	assert.InDelta(t, 6.0, measure("a"), 1e-9)
	assert.InDelta(t, 24.0, measure("abcd"), 1e-9)
	assert.InDelta(t, 9.0, SpaceWidth(metric, 18), 1e-9)
}

// The shipped Go fonts keep this first paragraph under 500pt at 12pt; a wide
// fixed metric gives the over-budget case the scenario describes.
func TestWrap_ReportBody(t *testing.T) {
	metric := fixedMetric(700)
	measure := ScaledMeasure(metric, 12)
	space := SpaceWidth(metric, 12)
	maxWidth := 600.0 - 100.0

	body := "Line one that is fairly long and should wrap across the available width\nSecond paragraph."
	paragraphs := strings.Split(body, "\n")
	require.Len(t, paragraphs, 2)

	first := Wrap(paragraphs[0], measure, space, maxWidth)
	assert.GreaterOrEqual(t, len(first), 2)

	second := Wrap(paragraphs[1], measure, space, maxWidth)
	require.Len(t, second, 1)
	assert.Equal(t, "Second paragraph.", second[0].Text)

	assert.Equal(t, append(first, second...), Wrap(body, measure, space, maxWidth))
}

package printing

import (
	"testing"

	"github.com/kitcha/docrender/internal/infrastructure/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/canvas"
	"golang.org/x/image/font/gofont/goregular"
)

func newGoRegularMetric(t *testing.T) *CanvasFontMetric {
	family := canvas.NewFontFamily("body")
	require.NoError(t, family.LoadFont(goregular.TTF, 0, canvas.FontRegular))
	return NewCanvasFontMetric(family)
}

func TestCanvasFontMetric_AdvanceWidth(t *testing.T) {
	metric := newGoRegularMetric(t)

	assert.Zero(t, metric.AdvanceWidth(""))

	single := metric.AdvanceWidth("a")
	assert.Greater(t, single, 0.0)
	assert.Less(t, single, float64(layout.UnitsPerEm))
	assert.Greater(t, metric.AdvanceWidth("aaaa"), 3*single)
	assert.Greater(t, metric.AdvanceWidth("W"), metric.AdvanceWidth("i"))
	assert.Equal(t, metric.AdvanceWidth("Report"), metric.AdvanceWidth("Report"))
}

func TestCanvasFontMetric_ScalesWithSize(t *testing.T) {
	metric := newGoRegularMetric(t)

	at12 := layout.ScaledMeasure(metric, 12)("Second paragraph.")
	at24 := layout.ScaledMeasure(metric, 24)("Second paragraph.")

	assert.InDelta(t, 2*at12, at24, 1e-6)
	assert.InDelta(t, metric.AdvanceWidth("Second paragraph.")/1000*12, at12, 1e-6)
}

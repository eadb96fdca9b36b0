package printing

import (
	"bytes"
	"context"
	"image"
	"math"
	"sync"
	"time"

	"github.com/kitcha/docrender/internal/infrastructure/layout"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// Page geometry in points. The origin is the bottom-left corner.
const (
	PageMargin       = 50.0
	TitleFontSize    = 18.0
	TitleLinePitch   = 26.0
	TitleTopOffset   = 200.0
	BodyFontSize     = 12.0
	BodyLinePitch    = 20.0
	TitleBodySpacing = 20.0

	// US Letter
	DefaultPageWidth  = 612.0
	DefaultPageHeight = 792.0
)

// PlacedLine is a wrapped line and the baseline position it is drawn at
type PlacedLine struct {
	Text  string
	Width float64
	X     float64
	Y     float64
	Size  float64
}

// PageLayout is the computed placement of every line on the page
type PageLayout struct {
	PageWidth  float64
	PageHeight float64
	MaxWidth   float64
	Title      []PlacedLine
	Body       []PlacedLine
}

// ComputeLayout wraps title and body and assigns baselines.
// Title lines start at pageHeight-200 and step down by 26; body lines start
// 20 below the last title slot and step down by 20.
func ComputeLayout(title, body string, titleMetric, bodyMetric layout.FontMetric, pageWidth, pageHeight float64) PageLayout {
	maxWidth := pageWidth - 2*PageMargin

	titleLines := layout.Wrap(title,
		layout.ScaledMeasure(titleMetric, TitleFontSize),
		layout.SpaceWidth(titleMetric, TitleFontSize),
		maxWidth)
	bodyLines := layout.Wrap(body,
		layout.ScaledMeasure(bodyMetric, BodyFontSize),
		layout.SpaceWidth(bodyMetric, BodyFontSize),
		maxWidth)

	titleStartY := pageHeight - TitleTopOffset
	bodyStartY := titleStartY - float64(len(titleLines))*TitleLinePitch - TitleBodySpacing

	return PageLayout{
		PageWidth:  pageWidth,
		PageHeight: pageHeight,
		MaxWidth:   maxWidth,
		Title:      place(titleLines, titleStartY, TitleLinePitch, TitleFontSize),
		Body:       place(bodyLines, bodyStartY, BodyLinePitch, BodyFontSize),
	}
}

func place(lines []layout.Line, startY, pitch, size float64) []PlacedLine {
	placed := make([]PlacedLine, len(lines))
	for i, line := range lines {
		placed[i] = PlacedLine{
			Text:  line.Text,
			Width: line.Width,
			X:     PageMargin,
			Y:     startY - float64(i)*pitch,
			Size:  size,
		}
	}
	return placed
}

// ComposerConfig configures a PageComposer
type ComposerConfig struct {
	PageWidth  float64
	PageHeight float64
	// Creator is written to the PDF document info
	Creator string
	Logger  *zap.Logger
}

// PageComposer draws a background, a title block and a body block onto a
// fixed-size page and serializes it to PDF. It is safe for concurrent use:
// all canvas state is created per call.
type PageComposer struct {
	pool      *ResourcePool
	config    ComposerConfig
	validator *PageValidator
	logger    *zap.Logger

	bgMu    sync.Mutex
	bgCache map[[2]float64]image.Image
}

// NewPageComposer creates a composer over a loaded resource pool
func NewPageComposer(pool *ResourcePool, config ComposerConfig) (*PageComposer, error) {
	if pool == nil {
		return nil, NewRenderError(ErrCodeResourceLoadFailed, "resource pool is required", nil)
	}
	if config.PageWidth == 0 {
		config.PageWidth = DefaultPageWidth
	}
	if config.PageHeight == 0 {
		config.PageHeight = DefaultPageHeight
	}
	if config.Creator == "" {
		config.Creator = "docrender"
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &PageComposer{
		pool:      pool,
		config:    config,
		validator: NewPageValidator(),
		logger:    logger,
		bgCache:   make(map[[2]float64]image.Image),
	}, nil
}

var _ DocumentComposer = (*PageComposer)(nil)

// Layout computes line placement without drawing
func (c *PageComposer) Layout(title, body string, pageWidth, pageHeight float64) (PageLayout, error) {
	pageWidth, pageHeight = c.pageSize(pageWidth, pageHeight)
	fonts, err := c.pool.newPageFonts()
	if err != nil {
		return PageLayout{}, err
	}
	return ComputeLayout(title, body,
		NewCanvasFontMetric(fonts.title),
		NewCanvasFontMetric(fonts.body),
		pageWidth, pageHeight), nil
}

// Compose renders req into a single-page PDF
func (c *PageComposer) Compose(ctx context.Context, req *ComposeRequest) (*ComposeResult, error) {
	if req == nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "compose request is nil", nil)
	}
	if err := ctx.Err(); err != nil {
		return nil, NewRenderError(ErrCodeRenderTimeout, "compose cancelled", err)
	}

	start := time.Now()
	pageWidth, pageHeight := c.pageSize(req.PageWidth, req.PageHeight)

	fonts, err := c.pool.newPageFonts()
	if err != nil {
		return nil, err
	}
	pageLayout := ComputeLayout(req.Title, req.Body,
		NewCanvasFontMetric(fonts.title),
		NewCanvasFontMetric(fonts.body),
		pageWidth, pageHeight)

	background := c.stretchedBackground(req.Background, pageWidth, pageHeight)

	widthMM, heightMM := ptToMM(pageWidth), ptToMM(pageHeight)
	page := canvas.New(widthMM, heightMM)
	pageCtx := canvas.NewContext(page)

	// Background first so both text layers sit on top of it
	pageCtx.DrawImage(0, 0, background, canvas.DPMM(float64(background.Bounds().Dx())/widthMM))
	drawLines(pageCtx, fonts.title, pageLayout.Title)
	drawLines(pageCtx, fonts.body, pageLayout.Body)

	var buf bytes.Buffer
	writer := pdf.New(&buf, widthMM, heightMM, nil)
	writer.SetInfo(req.Title, "", "", "", c.config.Creator)
	page.RenderTo(writer)
	if err := writer.Close(); err != nil {
		return nil, NewRenderError(ErrCodeRenderFailed, "failed to write PDF", err)
	}

	data := buf.Bytes()
	pageCount, err := c.validator.PageCount(data)
	if err != nil {
		return nil, err
	}
	if pageCount != 1 {
		return nil, NewRenderError(ErrCodeRenderFailed, "composed document is not a single page", nil)
	}

	duration := time.Since(start)
	c.logger.Debug("Page composed",
		zap.Int("title_lines", len(pageLayout.Title)),
		zap.Int("body_lines", len(pageLayout.Body)),
		zap.Int("size", len(data)),
		zap.Duration("duration", duration))

	return &ComposeResult{
		PDFData:        data,
		PageCount:      pageCount,
		Layout:         pageLayout,
		RenderDuration: duration,
	}, nil
}

func (c *PageComposer) pageSize(width, height float64) (float64, float64) {
	if width <= 0 {
		width = c.config.PageWidth
	}
	if height <= 0 {
		height = c.config.PageHeight
	}
	return width, height
}

func drawLines(ctx *canvas.Context, family *canvas.FontFamily, lines []PlacedLine) {
	for _, line := range lines {
		face := family.Face(line.Size, canvas.Black, canvas.FontRegular, canvas.FontNormal)
		ctx.DrawText(ptToMM(line.X), ptToMM(line.Y), canvas.NewTextLine(face, line.Text, canvas.Left))
	}
}

// stretchedBackground resamples the background to the page aspect ratio so
// that drawing it at the page width also fills the page height.
// Results for the pooled background are cached per page size.
func (c *PageComposer) stretchedBackground(override image.Image, pageWidth, pageHeight float64) image.Image {
	if override != nil {
		return stretch(override, pageWidth, pageHeight)
	}

	key := [2]float64{pageWidth, pageHeight}
	c.bgMu.Lock()
	defer c.bgMu.Unlock()
	if img, ok := c.bgCache[key]; ok {
		return img
	}
	img := stretch(c.pool.Background(), pageWidth, pageHeight)
	c.bgCache[key] = img
	return img
}

// stretch scales src to at least one pixel per point with the page aspect ratio.
func stretch(src image.Image, pageWidth, pageHeight float64) image.Image {
	sb := src.Bounds()
	scale := math.Max(1, math.Max(float64(sb.Dx())/pageWidth, float64(sb.Dy())/pageHeight))
	w := int(math.Round(pageWidth * scale))
	h := int(math.Round(pageHeight * scale))
	if w == sb.Dx() && h == sb.Dy() {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, sb, draw.Src, nil)
	return dst
}

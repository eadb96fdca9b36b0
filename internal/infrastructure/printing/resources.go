package printing

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/tdewolff/canvas"
	"go.uber.org/zap"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/sync/errgroup"
)

// BuiltinPrefix selects an embedded resource instead of a file path
const BuiltinPrefix = "builtin:"

var builtinFonts = map[string][]byte{
	"goregular": goregular.TTF,
	"gobold":    gobold.TTF,
}

// ResourceConfig names the fonts and background used for every page
type ResourceConfig struct {
	TitleFont  string
	BodyFont   string
	Background string
}

// ResourcePool holds the render inputs loaded once at startup.
// It is read-only after LoadResources returns and safe to share.
type ResourcePool struct {
	titleFont  []byte
	bodyFont   []byte
	background image.Image
}

// LoadResources reads both fonts and the background concurrently.
// Any failure is reported as RESOURCE_LOAD_FAILED.
func LoadResources(ctx context.Context, cfg ResourceConfig, logger *zap.Logger) (*ResourcePool, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	pool := &ResourcePool{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		data, err := LoadFont(cfg.TitleFont)
		if err != nil {
			return fmt.Errorf("title font: %w", err)
		}
		pool.titleFont = data
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		data, err := LoadFont(cfg.BodyFont)
		if err != nil {
			return fmt.Errorf("body font: %w", err)
		}
		pool.bodyFont = data
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		img, err := LoadImage(cfg.Background)
		if err != nil {
			return fmt.Errorf("background: %w", err)
		}
		pool.background = img
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, NewRenderError(ErrCodeResourceLoadFailed, "failed to load render resources", err)
	}

	logger.Info("Render resources loaded",
		zap.String("title_font", cfg.TitleFont),
		zap.String("body_font", cfg.BodyFont),
		zap.String("background", cfg.Background),
		zap.Int("background_width", pool.background.Bounds().Dx()),
		zap.Int("background_height", pool.background.Bounds().Dy()))

	return pool, nil
}

// NewResourcePool builds a pool from already loaded inputs
func NewResourcePool(titleFont, bodyFont []byte, background image.Image) (*ResourcePool, error) {
	if len(titleFont) == 0 || len(bodyFont) == 0 {
		return nil, NewRenderError(ErrCodeResourceLoadFailed, "font data is empty", nil)
	}
	if background == nil || background.Bounds().Empty() {
		return nil, NewRenderError(ErrCodeResourceLoadFailed, "background image is empty", nil)
	}
	return &ResourcePool{
		titleFont:  titleFont,
		bodyFont:   bodyFont,
		background: background,
	}, nil
}

// Background returns the pooled background image
func (p *ResourcePool) Background() image.Image {
	return p.background
}

// LoadFont returns font bytes from a file path or a builtin:<name> reference.
// The bytes are parsed once so a corrupt file fails here rather than mid-render.
func LoadFont(path string) ([]byte, error) {
	var data []byte
	if name, ok := strings.CutPrefix(path, BuiltinPrefix); ok {
		blob, found := builtinFonts[name]
		if !found {
			return nil, fmt.Errorf("unknown builtin font %q", name)
		}
		data = blob
	} else {
		if path == "" {
			return nil, fmt.Errorf("font path is empty")
		}
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read font %s: %w", path, err)
		}
		data = blob
	}

	family := canvas.NewFontFamily("check")
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	return data, nil
}

// LoadImage decodes a PNG, JPEG or GIF from a file path.
// builtin:blank yields a plain white page.
func LoadImage(path string) (image.Image, error) {
	if name, ok := strings.CutPrefix(path, BuiltinPrefix); ok {
		if name != "blank" {
			return nil, fmt.Errorf("unknown builtin image %q", name)
		}
		return blankImage(), nil
	}
	if path == "" {
		return nil, fmt.Errorf("image path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return img, nil
}

func blankImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	return img
}

// pageFonts is the per-render font state built from the pooled bytes.
type pageFonts struct {
	title *canvas.FontFamily
	body  *canvas.FontFamily
}

func (p *ResourcePool) newPageFonts() (*pageFonts, error) {
	title := canvas.NewFontFamily("title")
	if err := title.LoadFont(p.titleFont, 0, canvas.FontRegular); err != nil {
		return nil, NewRenderError(ErrCodeResourceLoadFailed, "failed to load title font", err)
	}
	body := canvas.NewFontFamily("body")
	if err := body.LoadFont(p.bodyFont, 0, canvas.FontRegular); err != nil {
		return nil, NewRenderError(ErrCodeResourceLoadFailed, "failed to load body font", err)
	}
	return &pageFonts{title: title, body: body}, nil
}

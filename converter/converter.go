package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type Converter struct {
	logger *zap.Logger
}

func NewConverter(logger *zap.Logger) *Converter {
	return &Converter{logger: logger}
}

// Result is a derived image. The source bytes handed to Reencode are never
// modified.
type Result struct {
	Data     []byte
	Filename string
	Format   Format
	Width    int
	Height   int
}

func (r *Result) ContentType() string {
	return r.Format.ContentType()
}

// Info is what can be learned about a source without decoding its pixels.
type Info struct {
	Format string
	Width  int
	Height int
}

func Inspect(source []byte) (*Info, error) {
	cfg, name, err := image.DecodeConfig(bytes.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &Info{Format: name, Width: cfg.Width, Height: cfg.Height}, nil
}

func (c *Converter) Reencode(source []byte, filename string, target TargetSpec) (*Result, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	c.logger.Info("Starting conversion",
		zap.String("filename", filename),
		zap.String("format", string(target.Format)),
		zap.Int("size", len(source)),
	)

	src, err := imaging.Decode(bytes.NewReader(source), imaging.AutoOrientation(true))
	if err != nil {
		c.logger.Error("Failed to decode image",
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	encode, ok := encoders[target.Format]
	if !ok {
		err := fmt.Errorf("%w: %s", ErrUnsupportedFormat, target.Format)
		c.logger.Error("Unsupported format", zap.Error(err))
		return nil, err
	}

	srcW, srcH := src.Bounds().Dx(), src.Bounds().Dy()
	width, height := target.Dimensions(srcW, srcH)

	var processed *image.NRGBA
	if width != srcW || height != srcH {
		c.logger.Info("Resizing image",
			zap.Int("width", width),
			zap.Int("height", height),
			zap.Bool("keep_aspect_ratio", target.KeepAspectRatio),
		)
		processed = imaging.Resize(src, width, height, imaging.Lanczos)
	} else {
		processed = imaging.Clone(src)
	}

	if !target.Format.SupportsAlpha() {
		processed = imaging.Overlay(imaging.New(width, height, color.White), processed, image.Pt(0, 0), 1.0)
	}

	var buf bytes.Buffer
	if err := encode(&buf, processed, target.quality()); err != nil {
		c.logger.Error("Failed to encode image",
			zap.String("format", string(target.Format)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %s: %v", ErrEncode, target.Format, err)
	}

	result := &Result{
		Data:     buf.Bytes(),
		Filename: OutputFilename(filename, target.Format, width, height, target.Resizing()),
		Format:   target.Format,
		Width:    width,
		Height:   height,
	}

	c.logger.Info("Conversion completed",
		zap.String("output", result.Filename),
		zap.Int("size", len(result.Data)),
	)

	return result, nil
}

// OutputFilename builds the download name: the original name up to its first
// dot, a WxH suffix when resized, and the format's extension.
func OutputFilename(original string, format Format, width, height int, resized bool) string {
	stem := filepath.Base(original)
	if i := strings.Index(stem, "."); i >= 0 {
		stem = stem[:i]
	}
	if stem == "" {
		stem = "image"
	}
	if resized {
		return fmt.Sprintf("%s_%dx%d.%s", stem, width, height, format.Extension())
	}
	return stem + "." + format.Extension()
}

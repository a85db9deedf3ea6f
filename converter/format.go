package converter

import (
	"fmt"
	"strings"
)

type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWEBP Format = "webp"
)

// ParseFormat accepts the output formats a target may name. "jpg" is an alias
// for JPEG.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWEBP, nil
	default:
		return "", fmt.Errorf("%w: format %q", ErrInvalidTarget, s)
	}
}

func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

func (f Format) ContentType() string {
	return "image/" + string(f)
}

// SupportsAlpha reports whether the encoded file keeps an alpha channel.
func (f Format) SupportsAlpha() bool {
	return f != FormatJPEG
}

func (f Format) Lossy() bool {
	return f == FormatJPEG || f == FormatWEBP
}

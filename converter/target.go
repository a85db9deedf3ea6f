package converter

import (
	"fmt"
	"math"
)

const (
	DefaultQuality = 90
	MinQuality     = 1
	MaxQuality     = 100
)

// TargetSpec describes the output of a re-encode. Zero Width/Height mean
// "not given"; zero Quality means DefaultQuality.
type TargetSpec struct {
	Format          Format
	Quality         int
	Width           int
	Height          int
	KeepAspectRatio bool
}

func (t TargetSpec) Validate() error {
	switch t.Format {
	case FormatPNG, FormatJPEG, FormatWEBP:
	default:
		return fmt.Errorf("%w: format %q", ErrInvalidTarget, t.Format)
	}
	if t.Quality != 0 && (t.Quality < MinQuality || t.Quality > MaxQuality) {
		return fmt.Errorf("%w: quality %d outside [%d,%d]", ErrInvalidTarget, t.Quality, MinQuality, MaxQuality)
	}
	if t.Width < 0 || t.Height < 0 {
		return fmt.Errorf("%w: negative dimensions %dx%d", ErrInvalidTarget, t.Width, t.Height)
	}
	return nil
}

// Resizing reports whether explicit output dimensions were requested.
func (t TargetSpec) Resizing() bool {
	return t.Width > 0 || t.Height > 0
}

func (t TargetSpec) quality() int {
	if t.Quality == 0 {
		return DefaultQuality
	}
	return t.Quality
}

// Dimensions resolves the output size against a source of srcW x srcH.
func (t TargetSpec) Dimensions(srcW, srcH int) (int, int) {
	w, h := t.Width, t.Height

	switch {
	case w > 0 && h > 0:
		return w, h
	case w > 0:
		if t.KeepAspectRatio && srcW > 0 {
			return w, atLeastOne(round(float64(w) * float64(srcH) / float64(srcW)))
		}
		return w, srcH
	case h > 0:
		if t.KeepAspectRatio && srcH > 0 {
			return atLeastOne(round(float64(h) * float64(srcW) / float64(srcH))), h
		}
		return srcW, h
	default:
		return srcW, srcH
	}
}

func round(in float64) int {
	return int(math.Round(in))
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

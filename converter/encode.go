package converter

import (
	"image"
	"io"

	"github.com/disintegration/imaging"
)

type encodeFunc func(w io.Writer, img image.Image, quality int) error

var encoders = map[Format]encodeFunc{
	FormatPNG:  encodePNG,
	FormatJPEG: encodeJPEG,
}

func registerEncoder(f Format, fn encodeFunc) {
	encoders[f] = fn
}

// Supported reports whether this build can encode f.
func Supported(f Format) bool {
	_, ok := encoders[f]
	return ok
}

func encodePNG(w io.Writer, img image.Image, _ int) error {
	return imaging.Encode(w, img, imaging.PNG)
}

func encodeJPEG(w io.Writer, img image.Image, quality int) error {
	return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
}

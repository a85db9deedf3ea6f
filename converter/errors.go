package converter

import "errors"

var (
	ErrDecode            = errors.New("failed to decode image")
	ErrEncode            = errors.New("failed to encode image")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrInvalidTarget     = errors.New("invalid target")
)

// IsMediaError reports whether err came from the decode or encode stage, as
// opposed to a malformed target.
func IsMediaError(err error) bool {
	return errors.Is(err, ErrDecode) ||
		errors.Is(err, ErrEncode) ||
		errors.Is(err, ErrUnsupportedFormat)
}

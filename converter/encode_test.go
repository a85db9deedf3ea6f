//go:build !webp

package converter

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest"
)

func TestConverter_Reencode_UnsupportedFormat(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))
	input := createTestImage(t, 400, 300)

	_, err := converter.Reencode(input, "input.jpg", TargetSpec{Format: FormatWEBP})
	if err == nil {
		t.Fatal("Expected error for unsupported format, got nil")
	}

	expectedErrMsg := "unsupported format: webp"
	if err.Error() != expectedErrMsg {
		t.Errorf("Expected '%s' error, got: %v", expectedErrMsg, err)
	}
	if !errors.Is(err, ErrUnsupportedFormat) || !IsMediaError(err) {
		t.Errorf("Expected a media error wrapping ErrUnsupportedFormat, got: %v", err)
	}
	if Supported(FormatWEBP) {
		t.Error("WebP must not be reported as supported without the webp build tag")
	}
}

func TestConverter_Reencode_DecodeFailsBeforeFormatLookup(t *testing.T) {
	converter := NewConverter(zaptest.NewLogger(t))

	_, err := converter.Reencode([]byte("not an image"), "input.webp", TargetSpec{Format: FormatWEBP})
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode for an undecodable source, got: %v", err)
	}
	if errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Decode failure must be reported before the missing encoder, got: %v", err)
	}
}

package service

import (
	"fmt"
	"slices"

	"toolbox/converter"
)

// Preset is what an image tool lets a client choose.
type Preset struct {
	Tool          string
	Formats       []converter.Format
	DefaultFormat converter.Format
	Resize        bool
	Quality       bool
	// KeepAspectRatio applies when the client does not say.
	KeepAspectRatio bool
}

var Presets = map[string]Preset{
	"image-to-png": {
		Tool:          "image-to-png",
		Formats:       []converter.Format{converter.FormatPNG},
		DefaultFormat: converter.FormatPNG,
	},
	"image-to-jpg": {
		Tool:          "image-to-jpg",
		Formats:       []converter.Format{converter.FormatJPEG},
		DefaultFormat: converter.FormatJPEG,
		Quality:       true,
	},
	"image-resizer": {
		Tool:            "image-resizer",
		Formats:         []converter.Format{converter.FormatPNG, converter.FormatJPEG, converter.FormatWEBP},
		DefaultFormat:   converter.FormatPNG,
		Resize:          true,
		Quality:         true,
		KeepAspectRatio: true,
	},
}

func LookupPreset(tool string) (Preset, error) {
	p, ok := Presets[tool]
	if !ok {
		return Preset{}, fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	return p, nil
}

// ProcessOptions are the client's choices for one process call. Empty
// fields fall back to the preset.
type ProcessOptions struct {
	Format          string
	Quality         int
	Width           int
	Height          int
	KeepAspectRatio *bool
}

// Target turns options into a TargetSpec the preset allows.
func (p Preset) Target(opts ProcessOptions, defaultQuality int) (converter.TargetSpec, error) {
	format := p.DefaultFormat
	if opts.Format != "" {
		f, err := converter.ParseFormat(opts.Format)
		if err != nil {
			return converter.TargetSpec{}, err
		}
		format = f
	}
	if !slices.Contains(p.Formats, format) {
		return converter.TargetSpec{}, fmt.Errorf("%w: %s does not produce %s", converter.ErrInvalidTarget, p.Tool, format)
	}
	if !p.Resize && (opts.Width != 0 || opts.Height != 0) {
		return converter.TargetSpec{}, fmt.Errorf("%w: %s does not resize", converter.ErrInvalidTarget, p.Tool)
	}

	target := converter.TargetSpec{
		Format:          format,
		Width:           opts.Width,
		Height:          opts.Height,
		KeepAspectRatio: p.KeepAspectRatio,
	}
	if opts.KeepAspectRatio != nil {
		target.KeepAspectRatio = *opts.KeepAspectRatio
	}
	// quality is only meaningful for lossy output
	if p.Quality && format.Lossy() {
		target.Quality = opts.Quality
		if target.Quality == 0 {
			target.Quality = defaultQuality
		}
	}

	return target, target.Validate()
}

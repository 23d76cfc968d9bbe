package render

import "errors"

var (
	// ErrGenerationFailed is the only error Render returns; the cause is
	// wrapped alongside it.
	ErrGenerationFailed  = errors.New("render: generation failed")
	ErrUnsupportedFormat = errors.New("render: unsupported output format")
	ErrUnknownPageFormat = errors.New("render: unknown page format")
)

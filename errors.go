package paintcore

import "errors"

var (
	// ErrTileShape is returned when a buffer does not hold exactly one tile.
	ErrTileShape = errors.New("paintcore: buffer is not a tile")

	// ErrChannelRange is returned when a 16-bit channel exceeds One.
	ErrChannelRange = errors.New("paintcore: channel out of range")

	// ErrNotPremultiplied is returned when a color channel exceeds its alpha.
	ErrNotPremultiplied = errors.New("paintcore: color exceeds alpha")
)

package types

import "errors"

// Error kinds surfaced by the engine. Callers match them with errors.Is.
var (
	// ErrInvalidArgument marks inputs outside an operation's domain.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUndefined marks results that have no defined value, such as a
	// Sharpe ratio over zero volatility.
	ErrUndefined = errors.New("arithmetic undefined")
)

package aggregator

import "errors"

// ErrUnknownDimension is returned by ParseDimensions for an unsupported name.
var ErrUnknownDimension = errors.New("unknown dimension: must be area or date")

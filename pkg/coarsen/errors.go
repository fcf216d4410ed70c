package coarsen

import "errors"

var (
	// ErrInvalidRatio is returned when a reduction ratio lies outside the
	// open interval (0, 1).
	ErrInvalidRatio = errors.New("reduction ratio must be strictly between 0 and 1")

	// ErrNoValidRatios is returned when every requested ratio was filtered
	// out as invalid.
	ErrNoValidRatios = errors.New("no valid reduction ratios provided")
)

// Warning is a recoverable diagnostic raised during a coarsening run.
// Callers decide whether a given warning is fatal for their use case.
type Warning struct {
	Component string `json:"component"`
	Message   string `json:"message"`
}

func (w Warning) String() string {
	return w.Component + ": " + w.Message
}

package scoring

import "errors"

var (
	// ErrInvalidDate is returned for date strings that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidArgument is returned for out-of-range inputs such as a
	// negative streak or a goal whose target date precedes its start.
	ErrInvalidArgument = errors.New("invalid argument")
)

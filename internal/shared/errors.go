package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Provider errors (search, fetch, transcode)
	ErrProvider           = fmt.Errorf("provider request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")

	// Catalog and filesystem errors
	ErrNotFound      = fmt.Errorf("not found")
	ErrTrackNotFound = fmt.Errorf("track not found")

	// Playback errors
	ErrUnsupportedFormat = fmt.Errorf("unsupported audio format")
	ErrPlayback          = fmt.Errorf("playback failed")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

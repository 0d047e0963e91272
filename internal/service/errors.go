package service

import "errors"

var (
	// ErrNoPortfolio means no portfolio has been saved yet.
	ErrNoPortfolio = errors.New("no portfolio saved")

	// ErrNoDigestDocument means the remote library holds no digest-like document.
	ErrNoDigestDocument = errors.New("no digest document found")

	// ErrContentTooShort means the fetched document content is empty or below
	// the minimum length threshold.
	ErrContentTooShort = errors.New("digest content below minimum length")

	// ErrGenerationInFlight means a generation pipeline is already running.
	ErrGenerationInFlight = errors.New("digest generation already in flight")

	// ErrGenerationTimeout means polling never saw a fresh digest document.
	ErrGenerationTimeout = errors.New("generation did not produce a document in time")
)

// ValidationError reports portfolio input that yields zero valid holdings.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

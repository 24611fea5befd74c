package errors

import "errors"

// Sentinels for domain errors. Fatal sentinels abort a run; the rest are
// reported and the run continues to best completion.
var (
	ErrValidation     = errors.New("validation error")
	ErrCallInitiation = errors.New("call initiation failed")
	ErrNoCallData     = errors.New("no call data obtained")
	ErrPollFetch      = errors.New("poll fetch failed")
	ErrExtraction     = errors.New("extraction failed")
	ErrDownload       = errors.New("download failed")
	ErrScrub          = errors.New("scrub failed")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrUnavailable    = errors.New("service unavailable")
	ErrQuotaExceeded  = errors.New("quota exceeded")
)

// Fatal reports whether err must abort the run with no outcome.
func Fatal(err error) bool {
	return errors.Is(err, ErrCallInitiation) || errors.Is(err, ErrNoCallData)
}

// Is reports whether err is one of the sentinels.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// Wrap adds context to an error.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return errors.Join(errors.New(message), err)
}

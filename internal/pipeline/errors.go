package pipeline

import "errors"

// ErrTooManyFailures is returned when the consecutive failure guard trips.
// The records gathered before that point are returned alongside it.
var ErrTooManyFailures = errors.New("too many consecutive failures")

// ErrNoRecord is returned by steps that need a record no earlier step made.
var ErrNoRecord = errors.New("no record to process")

// ErrNoPage is returned by steps that need a page no earlier step fetched.
var ErrNoPage = errors.New("no page to process")

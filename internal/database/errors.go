package database

import "errors"

// ErrDatabaseNotFound is returned by Open when CreateIfNotExists is false
// and no database file exists.
var ErrDatabaseNotFound = errors.New("database not found")

// ErrEmptyURL is returned when a record without a URL is stored.
var ErrEmptyURL = errors.New("record has no url")

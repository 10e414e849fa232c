package dataset

import "errors"

// Failure categories for the data access layer. All of them are
// unrecoverable at this level and propagate to the caller; callers match
// them with errors.Is. I/O failures are not wrapped in a category of their
// own and carry the underlying os error instead.
var (
	// ErrFormat marks a malformed table, e.g. a line with a token count
	// different from the first line's.
	ErrFormat = errors.New("format error")

	// ErrData marks disallowed values, e.g. the missing-phenotype
	// sentinel.
	ErrData = errors.New("data error")

	// ErrState marks an operation attempted before its prerequisite
	// state exists, e.g. attaching a genotype file before the sample
	// count is known.
	ErrState = errors.New("state error")

	// ErrIndex marks a logical column index outside the augmented
	// design matrix range.
	ErrIndex = errors.New("index error")
)

package repository

import (
	"errors"
	"fmt"
)

// Sentinel kinds for warehouse errors.
var (
	ErrOpen       = errors.New("open warehouse")
	ErrSchema     = errors.New("apply warehouse schema")
	ErrUnknownKPI = errors.New("unknown kpi")
)

// ReferentialError reports a record whose natural key has no dimension row.
type ReferentialError struct {
	Line      int
	Dimension string
	Key       string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("line %d: no %s row for key %q", e.Line, e.Dimension, e.Key)
}

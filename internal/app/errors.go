package service

import (
	"errors"
	"fmt"
)

// Pipeline stages.
const (
	StageExtract   = "extract"
	StageTransform = "transform"
	StageLoad      = "load"
	StageAggregate = "aggregate"
	StageExport    = "export"
)

// ErrNoConfig is returned when a Service is built without configuration.
var ErrNoConfig = errors.New("service: nil config")

// StageError wraps the failure of one pipeline stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s stage: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FailedStage returns the stage of the first StageError in err's chain.
func FailedStage(err error) (string, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

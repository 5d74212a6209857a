package export

import "errors"

// Sentinel kinds for export errors.
var (
	ErrOutputDir   = errors.New("prepare output directory")
	ErrWriteExport = errors.New("write export")
)

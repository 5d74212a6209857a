package classify

import "errors"

// Sentinel kinds for classification errors.
var (
	ErrUnparseableDate = errors.New("unparseable application date")
)

package queue

import "errors"

// ErrClosed is returned when enqueuing on a closed queue.
var ErrClosed = errors.New("queue closed")

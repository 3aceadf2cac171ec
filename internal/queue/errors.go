package queue

import "errors"

// ErrQueueDisabled 队列未启用
var ErrQueueDisabled = errors.New("queue disabled")

package sim

import "errors"

// ErrCommandQueueFull is returned by Do when the command buffer has no room
// before the next tick drains it.
var ErrCommandQueueFull = errors.New("command queue full")

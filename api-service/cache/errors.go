package cache

import "errors"

// ErrDisabled is reported by the health check of the Disabled cache.
var ErrDisabled = errors.New("cache disabled")

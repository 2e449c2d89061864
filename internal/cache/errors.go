package cache

// Error provides constant error strings to the driver functions.
type Error string

func (e Error) Error() string { return string(e) }

// Constant errors.
// Rule of thumb, all errors start with a small letter and end with no full stop.
const (
	ErrInvalidCapacity   = Error("capacity must be a positive integer")
	ErrInvalidTTL        = Error("TTL must be a positive duration")
	ErrInvalidShardCount = Error("shard count must be a positive integer")
)

package cacheclient

// Error provides constant error strings to the driver functions.
type Error string

func (e Error) Error() string { return string(e) }

// Constant errors.
// Rule of thumb, all errors start with a small letter and end with no full stop.
const (
	ErrKeyNotFound     = Error("key doesn't exist on the cache node")
	ErrRateLimited     = Error("cache node rejected the call, rate limit exceeded")
	ErrUnexpectedReply = Error("cache node sent an unexpected reply")
)

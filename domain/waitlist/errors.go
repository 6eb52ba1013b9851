package waitlist

import "fmt"

// RateLimitError signals that the requester's IP reached its daily submission
// ceiling. RetryAfterSeconds counts down to the next UTC midnight and feeds
// the Retry-After response header.
type RateLimitError struct {
	RetryAfterSeconds int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("daily submission limit reached, retry in %ds", e.RetryAfterSeconds)
}

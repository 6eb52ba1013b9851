package constants

import "time"

// ServiceName is the identifier reported by the health endpoint and used as
// the default OTel service name.
const ServiceName = "waitlist-api"

// RFC 3339 date-time format string.
// Use this format for all date-time serialization and communication with external systems.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

// Waitlist submission limits.
const (
	// DefaultDailySubmissionLimit is the maximum number of accepted waitlist
	// submissions per IP per UTC calendar day.
	DefaultDailySubmissionLimit = 10
	// MaxEmailLength matches the upper bound of RFC 3696 addresses.
	MaxEmailLength = 320
	// MaxUseCaseLength caps the free-text use case field.
	MaxUseCaseLength = 1200
	// MaxHoneypotLength caps the hidden website/company field.
	MaxHoneypotLength = 200
)

// Default transport-level rate limiting configuration
const (
	// DefaultRateLimitRequests is the default number of requests allowed per time window
	DefaultRateLimitRequests = 100
	// DefaultRateLimitWindowMinutes is the default time window for rate limiting
	DefaultRateLimitWindowMinutes = 1
)

// DefaultRateLimitWindow returns the default rate limit window duration
func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}

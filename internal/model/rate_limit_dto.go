package model

import "time"

// RateLimitDecision is the outcome of one hit against a fixed-window counter.
type RateLimitDecision struct {
	Allowed   bool
	Limit     int
	Remaining int
	Reset     time.Duration
}

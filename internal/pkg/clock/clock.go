// Package clock provides an injectable time source.
package clock

import "time"

//go:generate mockgen -destination=mock/mock.go -package=clockmock github.com/tetrisdev/SPTServer/internal/pkg/clock Clock

// Clock provides the current time. The raid-loot cache uses it for TTL
// bookkeeping and the seasonal event service for event-window checks.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using system time.
type Real struct{}

// Now returns the current time.
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock.
func New() Clock {
	return &Real{}
}

// Fixed is a Clock pinned to a single instant, for tests.
type Fixed struct {
	T time.Time
}

// Now returns the pinned instant.
func (c *Fixed) Now() time.Time {
	return c.T
}

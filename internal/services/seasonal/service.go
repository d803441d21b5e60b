// Package seasonal provides the seasonal-event collaborator: whether an
// event is active and which event-exclusive item ids are excluded from
// generation outside their window.
package seasonal

import (
	"time"

	"github.com/tetrisdev/SPTServer/internal/errors"
	"github.com/tetrisdev/SPTServer/internal/pkg/clock"
)

//go:generate mockgen -destination=mock/mock_service.go -package=seasonalmock github.com/tetrisdev/SPTServer/internal/services/seasonal Service

// Service reports seasonal-event state to the generation pass.
type Service interface {
	// ActiveEvent returns the name of the currently active event, or ""
	// when none is active.
	ActiveEvent() string

	// InactiveItemBlacklist returns the set of item template ids excluded
	// from generation right now: the exclusive items of every event that is
	// not currently active.
	InactiveItemBlacklist() map[string]bool
}

// Event is one seasonal event window with its exclusive item ids. Windows
// use month/day boundaries and recur yearly.
type Event struct {
	Name       string   `json:"name"`
	StartMonth int      `json:"startMonth"`
	StartDay   int      `json:"startDay"`
	EndMonth   int      `json:"endMonth"`
	EndDay     int      `json:"endDay"`
	ItemIDs    []string `json:"itemIds"`
}

// Config holds the dependencies for the seasonal service.
type Config struct {
	Clock  clock.Clock
	Events []Event
}

// Validate ensures all required dependencies are provided.
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Clock == nil {
		vb.RequiredField("Clock")
	}

	return vb.Build()
}

type service struct {
	clk    clock.Clock
	events []Event
}

// New creates a seasonal service over a fixed event calendar.
func New(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &service{
		clk:    cfg.Clock,
		events: cfg.Events,
	}, nil
}

// active reports whether an event window covers the given time.
func (e *Event) active(now time.Time) bool {
	start := time.Date(now.Year(), time.Month(e.StartMonth), e.StartDay, 0, 0, 0, 0, now.Location())
	end := time.Date(now.Year(), time.Month(e.EndMonth), e.EndDay, 23, 59, 59, 0, now.Location())

	if end.Before(start) {
		// Window wraps the year boundary (e.g. late December to early
		// January).
		return !now.Before(start) || !now.After(end)
	}
	return !now.Before(start) && !now.After(end)
}

func (s *service) ActiveEvent() string {
	now := s.clk.Now()
	for i := range s.events {
		if s.events[i].active(now) {
			return s.events[i].Name
		}
	}
	return ""
}

func (s *service) InactiveItemBlacklist() map[string]bool {
	now := s.clk.Now()
	blacklist := make(map[string]bool)
	for i := range s.events {
		if s.events[i].active(now) {
			continue
		}
		for _, id := range s.events[i].ItemIDs {
			blacklist[id] = true
		}
	}
	return blacklist
}

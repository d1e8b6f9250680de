package kernel

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

// DefaultTimezone is the warehouse's local zone (Brasília time).
const DefaultTimezone = "America/Sao_Paulo"

// Clock supplies the current time to use cases and domain services.
type Clock interface {
	Now() time.Time
}

// ZonedClock reports wall-clock time in a fixed location.
type ZonedClock struct {
	loc *time.Location
}

// NewZonedClock loads the named IANA zone. An empty name selects DefaultTimezone.
func NewZonedClock(name string) (*ZonedClock, error) {
	if name == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return &ZonedClock{loc: loc}, nil
}

func (c *ZonedClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c *ZonedClock) Location() *time.Location {
	return c.loc
}

// FixedClock always returns the same instant. It is meant for tests and replays.
type FixedClock struct {
	At time.Time
}

func (c FixedClock) Now() time.Time {
	return c.At
}

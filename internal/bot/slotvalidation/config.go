package slotvalidation

import (
	"fmt"
	"strings"
	"time"
)

// Clock supplies the current instant. Tests pin it.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

type Config struct {
	Locations []string
	Cuisines  []string
	// DateLayouts are tried in order when parsing the date slot.
	DateLayouts []string
	Location    *time.Location
}

func DefaultConfig() *Config {
	return &Config{
		Locations: []string{"manhattan"},
		Cuisines:  []string{"chinese", "japanese", "korean", "american", "french", "italian"},
		DateLayouts: []string{
			"2006-01-02",
			"01/02/2006",
			"2006/01/02",
			"January 2, 2006",
			"Jan 2, 2006",
		},
		Location: mustLoadLocation("America/New_York"),
	}
}

func (c *Config) Validate() error {
	if len(c.Locations) == 0 {
		return fmt.Errorf("at least one serviced location is required")
	}
	if len(c.Cuisines) == 0 {
		return fmt.Errorf("at least one cuisine is required")
	}
	if len(c.DateLayouts) == 0 {
		return fmt.Errorf("at least one date layout is required")
	}
	if c.Location == nil {
		return fmt.Errorf("timezone location is required")
	}
	for _, l := range c.Locations {
		if l != strings.ToLower(l) {
			return fmt.Errorf("location %q must be lower case", l)
		}
	}
	for _, cu := range c.Cuisines {
		if cu != strings.ToLower(cu) {
			return fmt.Errorf("cuisine %q must be lower case", cu)
		}
	}
	return nil
}

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

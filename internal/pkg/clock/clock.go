package clock

import (
	"time"

	"interpreter-booking/internal/pkg/config"
)

// Clock resolves "now" and the calendar policy derived from it: whether we
// are inside the quiet-hour window, and where a deferred delivery should
// land.
type Clock interface {
	Now() time.Time
	IsNightTime() bool
	NextBusinessTime() time.Time
}

type RealClock struct {
	cal Calendar
}

func NewRealClock(cfg config.CalendarConfig) (Clock, error) {
	cal, err := NewCalendar(cfg)
	if err != nil {
		return nil, err
	}
	return &RealClock{cal: cal}, nil
}

func (c *RealClock) Now() time.Time {
	return time.Now().In(c.cal.Location())
}

func (c *RealClock) IsNightTime() bool {
	return c.cal.IsNight(c.Now())
}

func (c *RealClock) NextBusinessTime() time.Time {
	return c.cal.NextBusinessTime(c.Now())
}

type MockClock struct {
	cal         Calendar
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	cal, _ := NewCalendar(config.NewTestConfig().Calendar)
	return &MockClock{cal: cal, currentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.currentTime
}

func (c *MockClock) IsNightTime() bool {
	return c.cal.IsNight(c.currentTime)
}

func (c *MockClock) NextBusinessTime() time.Time {
	return c.cal.NextBusinessTime(c.currentTime)
}

func (c *MockClock) Set(t time.Time) {
	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.currentTime = c.currentTime.Add(d)
}

package job

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidSessionTime = errors.New("session time must be H:MM or H:MM:SS")

// SessionTime is the elapsed interval of a completed interpretation.
type SessionTime struct {
	hours   int
	minutes int
	seconds int
}

// ParseSessionTime accepts the admin-entered "1:30:00" (or "1:30") form.
func ParseSessionTime(raw string) (SessionTime, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return SessionTime{}, ErrInvalidSessionTime
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return SessionTime{}, ErrInvalidSessionTime
		}
		nums[i] = n
	}

	st := SessionTime{hours: nums[0], minutes: nums[1]}
	if len(nums) == 3 {
		st.seconds = nums[2]
	}
	if st.minutes > 59 || st.seconds > 59 {
		return SessionTime{}, ErrInvalidSessionTime
	}
	return st, nil
}

// SessionTimeBetween measures the interval from start to end, truncated to
// whole seconds.
func SessionTimeBetween(start, end time.Time) SessionTime {
	d := end.Sub(start)
	if d < 0 {
		d = -d
	}
	total := int(d / time.Second)
	return SessionTime{
		hours:   total / 3600,
		minutes: (total % 3600) / 60,
		seconds: total % 60,
	}
}

// Raw renders the stored "H:MM:SS" form.
func (s SessionTime) Raw() string {
	return fmt.Sprintf("%d:%02d:%02d", s.hours, s.minutes, s.seconds)
}

// Display renders the customer-facing "1 tim 30 min" form used in session
// ended mails.
func (s SessionTime) Display() string {
	return fmt.Sprintf("%d tim %d min", s.hours, s.minutes)
}

func (s SessionTime) Minutes() int {
	return s.hours*60 + s.minutes
}

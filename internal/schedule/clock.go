package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

const (
	// DateLayout формат календарной даты в callback-данных и хранилище
	DateLayout = "2006-01-02"
	// ClockLayout формат времени слота
	ClockLayout = "15:04"

	minutesPerDay = 24 * 60
)

var (
	ErrInvalidClock    = errors.New("invalid clock time")
	ErrInvalidHours    = errors.New("open time is after close time")
	ErrInvalidHoliday  = errors.New("invalid holiday date")
	ErrInvalidDuration = errors.New("slot duration must be positive")
)

// Clock время суток с точностью до минуты (минуты от полуночи).
// 24:00 допустимо как время закрытия.
type Clock int

// ParseClock разбирает строку вида "HH:MM".
func ParseClock(s string) (Clock, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	h, errH := strconv.Atoi(s[:2])
	m, errM := strconv.Atoi(s[3:])
	if errH != nil || errM != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	if h < 0 || m < 0 || m > 59 || h > 24 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
	}
	return NewClock(h, m), nil
}

func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// On привязывает время суток к календарной дате day в локации loc.
func (c Clock) On(day time.Time, loc *time.Location) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour(), c.Minute(), 0, 0, loc)
}

// Hours часы работы в один день.
type Hours struct {
	Open  Clock
	Close Clock
}

func (h Hours) Validate() error {
	if h.Open < 0 || h.Close > minutesPerDay {
		return ErrInvalidClock
	}
	if h.Open > h.Close {
		return fmt.Errorf("%w: %s-%s", ErrInvalidHours, h.Open, h.Close)
	}
	return nil
}

func (h Hours) String() string {
	return h.Open.String() + "–" + h.Close.String()
}

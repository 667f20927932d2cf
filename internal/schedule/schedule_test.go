package schedule

import (
	"errors"
	"testing"
	"time"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func hours(open, close string) *Hours {
	o, err := ParseClock(open)
	if err != nil {
		panic(err)
	}
	c, err := ParseClock(close)
	if err != nil {
		panic(err)
	}
	return &Hours{Open: o, Close: c}
}

func poolWeek() WeeklyHours {
	return WeeklyHours{
		time.Monday:    hours("07:00", "22:00"),
		time.Tuesday:   hours("07:00", "22:00"),
		time.Wednesday: hours("07:00", "22:00"),
		time.Thursday:  hours("07:00", "22:00"),
		time.Friday:    hours("07:00", "22:00"),
		time.Saturday:  hours("08:00", "20:00"),
		time.Sunday:    nil,
	}
}

func newTestSchedule(t *testing.T, holidays ...string) *Schedule {
	t.Helper()
	s, err := New(Options{
		Location:    mustLoc(t),
		Weekly:      poolWeek(),
		Holidays:    holidays,
		SlotMinutes: 60,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{in: "07:00", want: NewClock(7, 0)},
		{in: "21:45", want: NewClock(21, 45)},
		{in: "24:00", want: NewClock(24, 0)},
		{in: "00:00", want: 0},
		{in: "7:00", wantErr: true},
		{in: "24:30", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidClock) {
					t.Fatalf("expected ErrInvalidClock, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			if got.String() != tt.in {
				t.Fatalf("String() = %q, want %q", got.String(), tt.in)
			}
		})
	}
}

func TestNew_Validation(t *testing.T) {
	loc := mustLoc(t)

	if _, err := New(Options{Location: loc, SlotMinutes: 0}); !errors.Is(err, ErrInvalidDuration) {
		t.Errorf("expected ErrInvalidDuration, got %v", err)
	}

	_, err := New(Options{
		Location:    loc,
		Weekly:      WeeklyHours{time.Monday: hours("22:00", "07:00")},
		SlotMinutes: 60,
	})
	if !errors.Is(err, ErrInvalidHours) {
		t.Errorf("expected ErrInvalidHours, got %v", err)
	}

	_, err = New(Options{Location: loc, Holidays: []string{"01.01.2025"}, SlotMinutes: 60})
	if !errors.Is(err, ErrInvalidHoliday) {
		t.Errorf("expected ErrInvalidHoliday, got %v", err)
	}
}

func TestHoursFor(t *testing.T) {
	s := newTestSchedule(t, "2025-08-11")
	loc := s.Location()

	monday := time.Date(2025, 8, 4, 0, 0, 0, 0, loc)
	h, ok := s.HoursFor(monday)
	if !ok {
		t.Fatal("expected monday to be open")
	}
	if h.Open != NewClock(7, 0) || h.Close != NewClock(22, 0) {
		t.Errorf("unexpected hours %s", h)
	}

	sunday := time.Date(2025, 8, 10, 0, 0, 0, 0, loc)
	if s.IsOpenOn(sunday) {
		t.Error("sunday configured as nil must be closed")
	}

	holidayMonday := time.Date(2025, 8, 11, 0, 0, 0, 0, loc)
	if _, ok := s.HoursFor(holidayMonday); ok {
		t.Error("holiday must override weekly pattern")
	}
	if got := s.Slots(holidayMonday); len(got) != 0 {
		t.Errorf("expected no slots on holiday, got %v", got)
	}
}

func TestHoursFor_HolidayOnEveryWeekday(t *testing.T) {
	loc := mustLoc(t)
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, loc)

	var holidays []string
	for i := 0; i < 7; i++ {
		holidays = append(holidays, DateKey(start.AddDate(0, 0, i)))
	}
	s := newTestSchedule(t, holidays...)

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		if s.IsOpenOn(day) {
			t.Errorf("%s (%s) is a holiday but reported open", DateKey(day), day.Weekday())
		}
	}
}

func TestIsOpenAt(t *testing.T) {
	s := newTestSchedule(t)
	loc := s.Location()

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"before open", time.Date(2025, 8, 4, 6, 59, 0, 0, loc), false},
		{"at open", time.Date(2025, 8, 4, 7, 0, 0, 0, loc), true},
		{"midday", time.Date(2025, 8, 4, 13, 30, 0, 0, loc), true},
		{"exactly at close", time.Date(2025, 8, 4, 22, 0, 0, 0, loc), true},
		{"one second past close", time.Date(2025, 8, 4, 22, 0, 1, 0, loc), false},
		{"one minute past close", time.Date(2025, 8, 4, 22, 1, 0, 0, loc), false},
		{"closed weekday", time.Date(2025, 8, 10, 12, 0, 0, 0, loc), false},
		// 09:00 UTC = 12:00 MSK
		{"other zone converted", time.Date(2025, 8, 4, 9, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.IsOpenAt(tt.at); got != tt.want {
				t.Errorf("IsOpenAt(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestIsOpenNow_UsesClock(t *testing.T) {
	base := newTestSchedule(t)
	loc := base.Location()

	s := base.WithClock(func() time.Time { return time.Date(2025, 8, 4, 22, 0, 0, 0, loc) })
	if !s.IsOpenNow() {
		t.Error("expected open at closing time")
	}

	s = base.WithClock(func() time.Time { return time.Date(2025, 8, 4, 22, 1, 0, 0, loc) })
	if s.IsOpenNow() {
		t.Error("expected closed one minute past closing time")
	}

	if got := DateKey(s.Today()); got != "2025-08-04" {
		t.Errorf("Today() = %s", got)
	}
}

package schedule

import (
	"fmt"
	"time"
)

// WeeklyHours график по дням недели. Отсутствующий ключ или nil означает выходной.
type WeeklyHours map[time.Weekday]*Hours

// Options исходные данные для построения расписания.
type Options struct {
	Location    *time.Location
	Weekly      WeeklyHours
	Holidays    []string
	SlotMinutes int
}

// Schedule неизменяемое расписание бассейна: недельный график, праздники и
// длительность слота. Создается один раз при старте.
type Schedule struct {
	loc      *time.Location
	weekly   map[time.Weekday]Hours
	holidays map[string]struct{}
	slot     time.Duration
	now      func() time.Time
}

func New(opts Options) (*Schedule, error) {
	if opts.SlotMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDuration, opts.SlotMinutes)
	}

	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}

	weekly := make(map[time.Weekday]Hours, len(opts.Weekly))
	for day, h := range opts.Weekly {
		if h == nil {
			continue
		}
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", day, err)
		}
		weekly[day] = *h
	}

	holidays := make(map[string]struct{}, len(opts.Holidays))
	for _, raw := range opts.Holidays {
		d, err := time.Parse(DateLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidHoliday, raw)
		}
		holidays[d.Format(DateLayout)] = struct{}{}
	}

	return &Schedule{
		loc:      loc,
		weekly:   weekly,
		holidays: holidays,
		slot:     time.Duration(opts.SlotMinutes) * time.Minute,
		now:      time.Now,
	}, nil
}

// WithClock возвращает копию расписания с другим источником текущего времени.
func (s *Schedule) WithClock(now func() time.Time) *Schedule {
	c := *s
	c.now = now
	return &c
}

func (s *Schedule) Location() *time.Location { return s.loc }

func (s *Schedule) SlotDuration() time.Duration { return s.slot }

// Now текущий момент в часовом поясе бассейна.
func (s *Schedule) Now() time.Time {
	return s.now().In(s.loc)
}

// Today полночь текущего дня в часовом поясе бассейна.
func (s *Schedule) Today() time.Time {
	y, m, d := s.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

// IsHoliday проверяет, объявлен ли день нерабочим.
func (s *Schedule) IsHoliday(day time.Time) bool {
	_, ok := s.holidays[DateKey(day)]
	return ok
}

// HoursFor возвращает часы работы на календарную дату day.
// Дата берется из полей самого day, без перевода в часовой пояс бассейна.
func (s *Schedule) HoursFor(day time.Time) (Hours, bool) {
	if s.IsHoliday(day) {
		return Hours{}, false
	}
	h, ok := s.weekly[day.Weekday()]
	return h, ok
}

func (s *Schedule) IsOpenOn(day time.Time) bool {
	_, ok := s.HoursFor(day)
	return ok
}

// IsOpenAt сообщает, открыт ли бассейн в момент t. Обе границы включаются.
func (s *Schedule) IsOpenAt(t time.Time) bool {
	local := t.In(s.loc)
	hours, ok := s.HoursFor(local)
	if !ok {
		return false
	}
	sec := local.Hour()*3600 + local.Minute()*60 + local.Second()
	return int(hours.Open)*60 <= sec && sec <= int(hours.Close)*60
}

func (s *Schedule) IsOpenNow() bool {
	return s.IsOpenAt(s.now())
}

// DateKey ключ календарной даты в формате YYYY-MM-DD.
func DateKey(day time.Time) string {
	return day.Format(DateLayout)
}

// ParseDate разбирает YYYY-MM-DD как полночь в часовом поясе бассейна.
func (s *Schedule) ParseDate(raw string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, raw, s.loc)
}

package schedule

import (
	"context"
	"fmt"
	"time"
)

// DaysAhead количество дней в недельной выдаче слотов.
const DaysAhead = 7

// BookedSlots источник уже занятых слотов по дате.
type BookedSlots interface {
	SlotsBookedFor(ctx context.Context, date string) ([]string, error)
}

// DaySlots свободные слоты на один день. Open различает выходной и
// полностью занятый рабочий день.
type DaySlots struct {
	Date string
	Open bool
	Free []string
}

// Slots все слоты рабочего дня без учета броней. Слот, не помещающийся
// целиком до закрытия, не выдается.
func (s *Schedule) Slots(day time.Time) []string {
	hours, ok := s.HoursFor(day)
	if !ok {
		return []string{}
	}

	step := Clock(s.slot / time.Minute)
	slots := make([]string, 0, int(hours.Close-hours.Open)/int(step))
	for cur := hours.Open; cur+step <= hours.Close; cur += step {
		slots = append(slots, cur.String())
	}
	return slots
}

// Generator выдает свободные слоты с учетом броней.
type Generator struct {
	schedule *Schedule
	booked   BookedSlots
}

func NewGenerator(s *Schedule, booked BookedSlots) *Generator {
	return &Generator{schedule: s, booked: booked}
}

func (g *Generator) Schedule() *Schedule { return g.schedule }

// GenerateSlots возвращает свободные слоты на дату в порядке возрастания.
func (g *Generator) GenerateSlots(ctx context.Context, day time.Time) ([]string, error) {
	slots := g.schedule.Slots(day)
	if len(slots) == 0 {
		return slots, nil
	}

	date := DateKey(day)
	taken, err := g.booked.SlotsBookedFor(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("booked slots for %s: %w", date, err)
	}
	if len(taken) == 0 {
		return slots, nil
	}

	busy := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		busy[t] = struct{}{}
	}

	free := slots[:0]
	for _, slot := range slots {
		if _, ok := busy[slot]; !ok {
			free = append(free, slot)
		}
	}
	return free, nil
}

// WeekSlots свободные слоты на 7 дней начиная с today включительно.
func (g *Generator) WeekSlots(ctx context.Context, today time.Time) ([]DaySlots, error) {
	week := make([]DaySlots, 0, DaysAhead)
	for _, day := range Week(today) {
		free, err := g.GenerateSlots(ctx, day)
		if err != nil {
			return nil, err
		}
		week = append(week, DaySlots{
			Date: DateKey(day),
			Open: g.schedule.IsOpenOn(day),
			Free: free,
		})
	}
	return week, nil
}

// Week календарные даты на 7 дней начиная с today.
func Week(today time.Time) []time.Time {
	days := make([]time.Time, 0, DaysAhead)
	for i := 0; i < DaysAhead; i++ {
		days = append(days, today.AddDate(0, 0, i))
	}
	return days
}

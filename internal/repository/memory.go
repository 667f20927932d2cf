package repository

import (
	"context"
	"sync"

	"poolbot/internal/domain"
)

var (
	_ domain.BookingRepository  = (*MemoryBookings)(nil)
	_ domain.QuestionRepository = (*MemoryQuestions)(nil)
)

// MemoryBookings реестр броней в памяти процесса. Сбрасывается при рестарте.
type MemoryBookings struct {
	mu     sync.RWMutex
	booked map[string][]string
}

func NewMemoryBookings() *MemoryBookings {
	return &MemoryBookings{booked: make(map[string][]string)}
}

func (m *MemoryBookings) RecordBooking(_ context.Context, date, slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.booked[date] = append(m.booked[date], slot)
	return nil
}

func (m *MemoryBookings) SlotsBookedFor(_ context.Context, date string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slots := m.booked[date]
	out := make([]string, len(slots))
	copy(out, slots)
	return out, nil
}

// MemoryQuestions последние вопросы пользователей в памяти.
type MemoryQuestions struct {
	mu        sync.RWMutex
	questions map[int64]string
}

func NewMemoryQuestions() *MemoryQuestions {
	return &MemoryQuestions{questions: make(map[int64]string)}
}

func (m *MemoryQuestions) SaveQuestion(_ context.Context, userID int64, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.questions[userID] = text
	return nil
}

func (m *MemoryQuestions) LastQuestion(_ context.Context, userID int64) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	q, ok := m.questions[userID]
	return q, ok, nil
}

package domain

import "context"

// BookingRepository реестр занятых слотов: дата -> упорядоченный список времени.
// Записи только добавляются; проверки дублей и пересечений нет.
type BookingRepository interface {
	RecordBooking(ctx context.Context, date, slot string) error
	SlotsBookedFor(ctx context.Context, date string) ([]string, error)
}

// QuestionRepository последний нераспознанный вопрос пользователя для передачи оператору.
type QuestionRepository interface {
	SaveQuestion(ctx context.Context, userID int64, text string) error
	LastQuestion(ctx context.Context, userID int64) (string, bool, error)
}

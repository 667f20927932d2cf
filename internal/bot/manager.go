package bot

import (
	"context"
	"fmt"
	"strings"

	"poolbot/internal/export"
	"poolbot/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// handleOperatorBookings список занятых слотов на неделю
func (b *Bot) handleOperatorBookings(ctx context.Context, chatID int64) {
	booked, err := b.weekBookings(ctx)
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Msg("load week bookings failed")
		b.sendMessage(chatID, msgScheduleError)
		return
	}

	lines := []string{msgOperatorBookings}
	for _, day := range schedule.Week(b.schedule.Today()) {
		date := schedule.DateKey(day)
		slots := booked[date]
		if len(slots) == 0 {
			lines = append(lines, fmt.Sprintf("%s: —", date))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", date, strings.Join(slots, ", ")))
	}
	b.sendMessage(chatID, strings.Join(lines, "\n"))
}

// handleOperatorExport отправляет оператору xlsx с сеткой слотов на неделю
func (b *Bot) handleOperatorExport(ctx context.Context, chatID int64) {
	today := b.schedule.Today()

	week, err := b.generator.WeekSlots(ctx, today)
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Msg("week slots failed")
		b.sendMessage(chatID, msgExportError)
		return
	}
	booked, err := b.weekBookings(ctx)
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Msg("load week bookings failed")
		b.sendMessage(chatID, msgExportError)
		return
	}

	days, err := export.DaysFromWeek(b.schedule, week, booked)
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Msg("build export rows failed")
		b.sendMessage(chatID, msgExportError)
		return
	}
	data, err := export.WeekWorkbook(days)
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Msg("build workbook failed")
		b.sendMessage(chatID, msgExportError)
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("bookings_%s.xlsx", schedule.DateKey(today)),
		Bytes: data,
	})
	doc.Caption = fmt.Sprintf("Бронирования %s – %s",
		schedule.DateKey(today), schedule.DateKey(today.AddDate(0, 0, schedule.DaysAhead-1)))
	b.send(doc)
}

func (b *Bot) weekBookings(ctx context.Context) (map[string][]string, error) {
	booked := make(map[string][]string, schedule.DaysAhead)
	for _, day := range schedule.Week(b.schedule.Today()) {
		date := schedule.DateKey(day)
		slots, err := b.bookings.SlotsBookedFor(ctx, date)
		if err != nil {
			return nil, fmt.Errorf("booked slots for %s: %w", date, err)
		}
		booked[date] = slots
	}
	return booked, nil
}

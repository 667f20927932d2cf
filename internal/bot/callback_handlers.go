package bot

import (
	"context"
	"strings"
	"time"

	"poolbot/internal/models"
	"poolbot/internal/notify"
	"poolbot/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleCallbackQuery(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	// Отвечаем на callback сразу, чтобы убрать "часики"
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, "")); err != nil {
		b.logger.Warn().Err(err).Str("callback_id", callback.ID).Msg("answer callback failed")
	}

	if callback.From == nil {
		return
	}
	if !b.allow(callback.From.ID) {
		return
	}

	data := callback.Data
	chatID := callback.From.ID
	if callback.Message != nil && callback.Message.Chat != nil {
		chatID = callback.Message.Chat.ID
	}

	if b.metrics != nil {
		b.metrics.CallbacksProcessed.WithLabelValues(callbackAction(data)).Inc()
	}

	switch {
	case data == cbFaqItems:
		b.sendMessage(chatID, itemsText(b.pool.RequiredItems))

	case data == cbIsOpenToday:
		hours, working := b.schedule.HoursFor(b.schedule.Today())
		b.sendMessage(chatID, openStatusText(b.schedule.IsOpenNow(), hours, working, b.schedule.Location().String()))

	case data == cbHowToBook:
		b.sendMessage(chatID, howToBookText(b.pool.BookingOptions))

	case data == cbFreeSlots:
		b.showFreeSlots(ctx, chatID)

	case data == cbMinAge:
		b.sendMessage(chatID, minAgeText(b.pool.MinChildAge))

	case data == cbBookStart:
		b.sendWithKeyboard(chatID, msgChooseDay, bookKeyboard())

	case data == cbBookToday:
		b.showDaySlots(ctx, chatID, b.schedule.Today())

	case data == cbBookTomorrow:
		b.showDaySlots(ctx, chatID, b.schedule.Today().AddDate(0, 0, 1))

	case data == cbBookMore:
		b.sendWithKeyboard(chatID, msgChooseDate, datesKeyboard(b.schedule.Today()))

	case data == cbOperator:
		b.sendMessage(chatID, operatorPromptText(b.phone))

	case data == cbSendToOperator:
		b.handleSendToOperator(ctx, chatID, callback.From)

	case data == cbBackMain:
		b.sendWithKeyboard(chatID, msgMainMenu, mainKeyboard())

	// book_time| проверяется раньше общего префикса book_
	case strings.HasPrefix(data, bookTimePrefix):
		b.handleBookTime(ctx, chatID, callback.From, data)

	case strings.HasPrefix(data, bookDatePrefix):
		day, err := b.schedule.ParseDate(strings.TrimPrefix(data, bookDatePrefix))
		if err != nil {
			b.sendMessage(chatID, msgInvalidDate)
			return
		}
		b.showDaySlots(ctx, chatID, day)

	default:
		b.logger.Debug().Str("data", data).Msg("unknown callback")
	}
}

// knownCallbacks callback-данные без параметров
var knownCallbacks = map[string]struct{}{
	cbFaqItems:       {},
	cbIsOpenToday:    {},
	cbHowToBook:      {},
	cbFreeSlots:      {},
	cbMinAge:         {},
	cbBookStart:      {},
	cbOperator:       {},
	cbSendToOperator: {},
	cbBackMain:       {},
	cbBookToday:      {},
	cbBookTomorrow:   {},
	cbBookMore:       {},
}

// callbackAction метка callback для метрик из фиксированного набора
func callbackAction(data string) string {
	if _, ok := knownCallbacks[data]; ok {
		return data
	}
	switch {
	case strings.HasPrefix(data, bookTimePrefix):
		return "book_time"
	case strings.HasPrefix(data, bookDatePrefix) && !strings.HasPrefix(data, "book_day_"):
		return "book_date"
	default:
		return "unknown"
	}
}

func (b *Bot) showFreeSlots(ctx context.Context, chatID int64) {
	week, err := b.generator.WeekSlots(ctx, b.schedule.Today())
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Msg("week slots failed")
		b.sendMessage(chatID, msgScheduleError)
		return
	}
	b.sendMessage(chatID, freeSlotsText(week))
}

func (b *Bot) showDaySlots(ctx context.Context, chatID int64, day time.Time) {
	date := schedule.DateKey(day)

	slots, err := b.generator.GenerateSlots(ctx, day)
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Str("date", date).Msg("generate slots failed")
		b.sendMessage(chatID, msgScheduleError)
		return
	}
	if len(slots) == 0 {
		b.sendMessage(chatID, noSlotsText(date))
		return
	}
	b.sendWithKeyboard(chatID, availableText(date), slotsKeyboard(date, slots))
}

// handleBookTime принимает заявку формата book_time|YYYY-MM-DD|HH:MM
func (b *Bot) handleBookTime(ctx context.Context, chatID int64, from *tgbotapi.User, data string) {
	parts := strings.Split(data, "|")
	if len(parts) != 3 {
		b.sendMessage(chatID, msgInvalidDate)
		return
	}
	date, slot := parts[1], parts[2]
	if _, err := b.schedule.ParseDate(date); err != nil {
		b.sendMessage(chatID, msgInvalidDate)
		return
	}

	if err := b.bookings.RecordBooking(ctx, date, slot); err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Str("date", date).Str("time", slot).Msg("record booking failed")
		b.sendMessage(chatID, msgBookingError)
		return
	}
	if b.metrics != nil {
		b.metrics.BookingsTotal.Inc()
	}

	b.sendMessage(chatID, bookingAcceptedText(date, slot))

	req := models.NewBookingRequest(date, slot, requesterFrom(from), b.schedule.Now())
	res := b.operator.NotifyBooking(ctx, req)
	b.countNotification("booking", res)
	b.logger.Info().
		Str("booking_id", req.ID.String()).
		Str("date", date).
		Str("time", slot).
		Int64("user_id", req.Requester.ID).
		Stringer("notify", res).
		Msg("booking accepted")

	if b.journal != nil {
		if err := b.journal.AppendBooking(ctx, req); err != nil {
			b.incErrors()
			b.logger.Error().Err(err).Str("booking_id", req.ID.String()).Msg("journal append failed")
		}
	}
}

func (b *Bot) handleSendToOperator(ctx context.Context, chatID int64, from *tgbotapi.User) {
	question, ok, err := b.questions.LastQuestion(ctx, from.ID)
	if err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Int64("user_id", from.ID).Msg("load question failed")
	}
	if !ok || err != nil {
		question = msgNoQuestionText
	}

	res := b.operator.ForwardQuestion(ctx, requesterFrom(from), question)
	b.countNotification("question", res)

	switch res {
	case notify.Delivered:
		b.sendMessage(chatID, msgQuestionSent)
	case notify.NotConfigured:
		b.sendMessage(chatID, msgOperatorMissing)
	default:
		b.sendMessage(chatID, msgOperatorFailed)
	}
}

func (b *Bot) countNotification(kind string, res notify.Result) {
	if b.metrics != nil {
		b.metrics.OperatorNotifications.WithLabelValues(kind, res.String()).Inc()
	}
}

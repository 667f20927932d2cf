package bot

import (
	"time"

	"poolbot/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Идентификаторы callback-данных
const (
	cbFaqItems       = "faq_items"
	cbIsOpenToday    = "is_open_today"
	cbHowToBook      = "how_to_book"
	cbFreeSlots      = "free_slots"
	cbMinAge         = "min_age"
	cbBookStart      = "book_start"
	cbOperator       = "operator"
	cbSendToOperator = "send_to_operator"
	cbBackMain       = "back_main"
	cbBookToday      = "book_day_0"
	cbBookTomorrow   = "book_day_1"
	cbBookMore       = "book_day_more"

	bookDatePrefix = "book_"
	bookTimePrefix = "book_time|"
)

func mainKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Что взять с собой?", cbFaqItems)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Работаете ли сегодня?", cbIsOpenToday)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Как записаться?", cbHowToBook)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Свободное время (7 дней)", cbFreeSlots)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("С какого возраста?", cbMinAge)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Записаться", cbBookStart)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Связаться с оператором", cbOperator)),
	)
}

func bookKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Сегодня", cbBookToday)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Завтра", cbBookTomorrow)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Другая дата (7 дней)", cbBookMore)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Назад", cbBackMain)),
	)
}

func unknownQuestionKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Передать оператору", cbSendToOperator)),
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData("Меню", cbBackMain)),
	)
}

// datesKeyboard кнопки дат на неделю вперед
func datesKeyboard(today time.Time) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, day := range schedule.Week(today) {
		date := schedule.DateKey(day)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(date, bookDatePrefix+date),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Назад", cbBookStart),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// slotsKeyboard по кнопке на каждый свободный слот
func slotsKeyboard(date string, slots []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(slots)+1)
	for _, slot := range slots {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(slot, bookTimePrefix+date+"|"+slot),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Назад", cbBookStart),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

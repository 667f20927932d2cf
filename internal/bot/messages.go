package bot

import (
	"fmt"
	"strings"

	"poolbot/internal/schedule"
)

const (
	msgMainMenu          = "Главное меню:"
	msgChooseDay         = "Выберите день для записи:"
	msgChooseDate        = "Выберите дату:"
	msgInvalidDate       = "Неверная дата"
	msgUnknownQuestion   = "Я не до конца понял запрос. Передать оператору?"
	msgQuestionSent      = "Ваш вопрос передан оператору. Ответят как можно скорее."
	msgOperatorFailed    = "Не удалось передать оператору. Попробуйте позже или позвоните администратору."
	msgOperatorMissing   = "Оператор не подключен. Укажите ADMIN_CHAT_ID в .env"
	msgNoQuestionText    = "(нет текста)"
	msgTodayClosed       = "Сегодня выходной."
	msgScheduleError     = "Не удалось получить расписание. Попробуйте позже."
	msgBookingError      = "Не удалось принять запись. Попробуйте позже или позвоните администратору."
	msgFreeSlotsHeader   = "Свободное время на ближайшие 7 дней:"
	msgNoSlots           = "нет свободных слотов или выходной"
	msgOperatorBookings  = "Заявки на ближайшие 7 дней:"
	msgExportError       = "Не удалось сформировать выгрузку."
	msgOperatorPrompt    = "Напишите ваш вопрос, я передам оператору."
	msgOperatorCallPhone = "Или позвоните: %s"
)

func greetingText(poolName string) string {
	return fmt.Sprintf("Привет! Я бот бассейна \"%s\". Чем помочь?", poolName)
}

func bulletList(items []string) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, "• "+item)
	}
	return strings.Join(lines, "\n")
}

func itemsText(items []string) string {
	return "Что взять с собой:\n" + bulletList(items)
}

func howToBookText(options []string) string {
	return "Как записаться:\n" + bulletList(options)
}

// openStatusText ответ на кнопку "Работаете ли сегодня?"
func openStatusText(open bool, hours schedule.Hours, working bool, zone string) string {
	status := "Сейчас ЗАКРЫТО ⛔"
	if open {
		status = "Сейчас ОТКРЫТО ✅"
	}
	if !working {
		return status + "\n" + msgTodayClosed
	}
	return fmt.Sprintf("%s\nСегодня работаем с %s до %s (%s).", status, hours.Open, hours.Close, zone)
}

// openStatusShortText ответ на свободный текст про режим работы
func openStatusShortText(open bool, hours schedule.Hours, working bool, zone string) string {
	if !working {
		return msgTodayClosed
	}
	status := "закрыты ⛔"
	if open {
		status = "открыты ✅"
	}
	return fmt.Sprintf("Сегодня мы %s. Часы: %s (%s).", status, hours, zone)
}

func freeSlotsText(week []schedule.DaySlots) string {
	lines := make([]string, 0, len(week)+1)
	lines = append(lines, msgFreeSlotsHeader)
	for _, day := range week {
		if len(day.Free) == 0 {
			lines = append(lines, fmt.Sprintf("%s: %s", day.Date, msgNoSlots))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %s", day.Date, strings.Join(day.Free, ", ")))
	}
	return strings.Join(lines, "\n")
}

func minAgeText(age int) string {
	return fmt.Sprintf("Мы записываем детей с %d лет. Для малышей возможны занятия в сопровождении тренера (уточняйте у администратора).", age)
}

func minAgeShortText(age int) string {
	return fmt.Sprintf("Мы записываем детей с %d лет. Детали у администратора.", age)
}

func noSlotsText(date string) string {
	return fmt.Sprintf("%s: %s", date, msgNoSlots)
}

func availableText(date string) string {
	return fmt.Sprintf("Доступно %s:", date)
}

func bookingAcceptedText(date, slot string) string {
	return fmt.Sprintf("Запрос на запись %s в %s принят. Администратор подтвердит в ближайшее время.", date, slot)
}

func operatorPromptText(phone string) string {
	if phone == "" {
		return msgOperatorPrompt
	}
	return msgOperatorPrompt + " " + fmt.Sprintf(msgOperatorCallPhone, phone)
}

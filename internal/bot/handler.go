package bot

import (
	"context"
	"strings"

	"poolbot/internal/intent"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil || msg.Chat == nil {
		return
	}
	if !b.allow(msg.From.ID) {
		return
	}

	chatID := msg.Chat.ID

	if msg.IsCommand() {
		command := msg.Command()
		switch {
		case command == "start" || command == "help":
			b.countCommand(command)
			b.sendWithKeyboard(chatID, greetingText(b.pool.Name), mainKeyboard())
			return

		// команды оператора принимаются только из его чата
		case command == "bookings" && b.operator.IsOperatorChat(chatID):
			b.countCommand(command)
			b.handleOperatorBookings(ctx, chatID)
			return

		case command == "export" && b.operator.IsOperatorChat(chatID):
			b.countCommand(command)
			b.handleOperatorExport(ctx, chatID)
			return
		}
	}

	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}
	b.handleText(ctx, msg, text)
}

func (b *Bot) countCommand(command string) {
	if b.metrics != nil {
		b.metrics.CommandsProcessed.WithLabelValues(command).Inc()
	}
}

// handleText отвечает на свободный текст по ключевым словам.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, text string) {
	chatID := msg.Chat.ID
	kind := intent.Classify(text)

	if b.metrics != nil {
		b.metrics.IntentsTotal.WithLabelValues(kind.String()).Inc()
	}

	switch kind {
	case intent.Items:
		b.sendMessage(chatID, itemsText(b.pool.RequiredItems))

	case intent.OpenStatus:
		hours, working := b.schedule.HoursFor(b.schedule.Today())
		b.sendMessage(chatID, openStatusShortText(b.schedule.IsOpenNow(), hours, working, b.schedule.Location().String()))

	case intent.HowToBook:
		b.sendMessage(chatID, howToBookText(b.pool.BookingOptions))

	case intent.FreeSlots:
		b.showFreeSlots(ctx, chatID)

	case intent.MinAge:
		b.sendMessage(chatID, minAgeShortText(b.pool.MinChildAge))

	default:
		if err := b.questions.SaveQuestion(ctx, msg.From.ID, text); err != nil {
			b.incErrors()
			b.logger.Error().Err(err).Int64("user_id", msg.From.ID).Msg("save question failed")
		}
		b.sendWithKeyboard(chatID, msgUnknownQuestion, unknownQuestionKeyboard())
	}
}

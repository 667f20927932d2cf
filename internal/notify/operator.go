package notify

import (
	"context"
	"fmt"

	"poolbot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// Result итог доставки сообщения оператору
type Result int

const (
	Delivered Result = iota
	NotConfigured
	Failed
)

func (r Result) String() string {
	switch r {
	case Delivered:
		return "delivered"
	case NotConfigured:
		return "not_configured"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Sender отправка сообщений в Telegram
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Operator канал связи с единственным оператором. chatID = 0 означает, что оператор не подключен.
type Operator struct {
	sender Sender
	chatID int64
	logger zerolog.Logger
}

func NewOperator(sender Sender, chatID int64, logger zerolog.Logger) *Operator {
	return &Operator{
		sender: sender,
		chatID: chatID,
		logger: logger.With().Str("component", "operator").Logger(),
	}
}

func (o *Operator) Configured() bool { return o.chatID != 0 }

// IsOperatorChat сообщает, пришло ли сообщение из чата оператора.
func (o *Operator) IsOperatorChat(chatID int64) bool {
	return o.Configured() && chatID == o.chatID
}

// NotifyBooking сообщает оператору о новой заявке на слот.
func (o *Operator) NotifyBooking(ctx context.Context, req models.BookingRequest) Result {
	text := fmt.Sprintf("Новая заявка: %s (@%s)\nДата: %s %s\nUserID: %d",
		req.Requester.FullName(), req.Requester.Mention(), req.Date, req.Time, req.Requester.ID)
	return o.send(ctx, text)
}

// ForwardQuestion пересылает оператору вопрос пользователя.
func (o *Operator) ForwardQuestion(ctx context.Context, from models.Requester, question string) Result {
	text := fmt.Sprintf("Вопрос от %s (@%s), ID %d:\n%s",
		from.FullName(), from.Mention(), from.ID, question)
	return o.send(ctx, text)
}

func (o *Operator) send(ctx context.Context, text string) Result {
	if !o.Configured() {
		return NotConfigured
	}
	if err := ctx.Err(); err != nil {
		o.logger.Warn().Err(err).Msg("operator notification cancelled")
		return Failed
	}

	if _, err := o.sender.Send(tgbotapi.NewMessage(o.chatID, text)); err != nil {
		o.logger.Error().Err(err).Int64("chat_id", o.chatID).Msg("operator notification failed")
		return Failed
	}
	return Delivered
}

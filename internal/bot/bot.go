package bot

import (
	"context"
	"time"

	"poolbot/internal/config"
	"poolbot/internal/domain"
	"poolbot/internal/models"
	"poolbot/internal/notify"
	"poolbot/internal/schedule"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
)

// TelegramAPI часть tgbotapi.BotAPI, которой пользуется бот
type TelegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Journal внешний журнал принятых заявок (Google Sheets)
type Journal interface {
	AppendBooking(ctx context.Context, req models.BookingRequest) error
}

// Deps зависимости бота. Journal и Metrics необязательны.
type Deps struct {
	API       TelegramAPI
	Pool      config.PoolConfig
	Operator  config.OperatorConfig
	RateLimit config.RateLimitConfig
	Generator *schedule.Generator
	Bookings  domain.BookingRepository
	Questions domain.QuestionRepository
	Notifier  *notify.Operator
	Journal   Journal
	Metrics   *Metrics
	Logger    zerolog.Logger
}

type Bot struct {
	api       TelegramAPI
	pool      config.PoolConfig
	phone     string
	schedule  *schedule.Schedule
	generator *schedule.Generator
	bookings  domain.BookingRepository
	questions domain.QuestionRepository
	operator  *notify.Operator
	journal   Journal
	metrics   *Metrics
	limiter   *userLimiter
	logger    zerolog.Logger
}

func New(d Deps) *Bot {
	return &Bot{
		api:       d.API,
		pool:      d.Pool,
		phone:     d.Operator.Phone,
		schedule:  d.Generator.Schedule(),
		generator: d.Generator,
		bookings:  d.Bookings,
		questions: d.Questions,
		operator:  d.Notifier,
		journal:   d.Journal,
		metrics:   d.Metrics,
		limiter:   newUserLimiter(d.RateLimit),
		logger:    d.Logger.With().Str("component", "bot").Logger(),
	}
}

// Start обрабатывает обновления по одному до закрытия канала или отмены ctx.
func (b *Bot) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	b.logger.Info().Msg("bot started")

	for {
		select {
		case <-ctx.Done():
			b.logger.Info().Msg("bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				b.logger.Info().Msg("updates channel closed")
				return
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate обрабатывает одно обновление Telegram.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	start := time.Now()
	if b.metrics != nil {
		b.metrics.UpdatesProcessed.Inc()
		defer func() {
			b.metrics.UpdateProcessingTime.Observe(time.Since(start).Seconds())
		}()
	}

	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// allow проверяет лимит пользователя и учитывает отброшенные обновления.
func (b *Bot) allow(userID int64) bool {
	if b.limiter.Allow(userID) {
		return true
	}
	if b.metrics != nil {
		b.metrics.RateLimited.Inc()
	}
	b.logger.Warn().Int64("user_id", userID).Msg("rate limit exceeded")
	return false
}

func (b *Bot) sendMessage(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	b.send(msg)
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.incErrors()
		b.logger.Error().Err(err).Msg("send message failed")
	}
}

func (b *Bot) incErrors() {
	if b.metrics != nil {
		b.metrics.ErrorsTotal.Inc()
	}
}

func requesterFrom(u *tgbotapi.User) models.Requester {
	if u == nil {
		return models.Requester{}
	}
	return models.Requester{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.UserName,
	}
}

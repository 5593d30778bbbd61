package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/models"
)

// Telegram sends reminders through a Telegram bot.
type Telegram struct {
	api *tgbotapi.BotAPI
}

// NewTelegram authorizes the bot against the public Telegram API.
func NewTelegram(token string) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return newTelegram(api), nil
}

// NewTelegramWithEndpoint is NewTelegram against a custom endpoint, in the
// tgbotapi format "https://host/bot%s/%s".
func NewTelegramWithEndpoint(token, endpoint string, client tgbotapi.HTTPClient) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPIWithClient(token, endpoint, client)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	return newTelegram(api), nil
}

func newTelegram(api *tgbotapi.BotAPI) *Telegram {
	api.Debug = false
	logger.Default().WithPrefix("notify").Info("authorized on telegram account %s", api.Self.UserName)
	return &Telegram{api: api}
}

func (t *Telegram) Notify(ctx context.Context, student models.Student, message string) error {
	if student.TelegramChatID == nil {
		return fmt.Errorf("student %d: %w", student.ID, ErrNoChannel)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(*student.TelegramChatID, message)
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("telegram send to student %d: %w", student.ID, err)
	}
	logger.FromContext(ctx).WithPrefix("notify").Debug("telegram reminder sent: student_id=%d", student.ID)
	return nil
}

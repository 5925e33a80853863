package notify

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ErrMissingTelegramToken indicates the Telegram sender was configured
// without a bot token or chat id.
var ErrMissingTelegramToken = errors.New("telegram: bot token and chat id are required")

// TelegramOptions configures the Telegram notification sender.
type TelegramOptions struct {
	BotToken   string
	ChatID     int64
	HTTPClient *http.Client
}

// TelegramSender pushes inquiry notifications to a staff chat.
type TelegramSender struct {
	token      string
	chatID     int64
	httpClient *http.Client

	bot *tgbotapi.BotAPI
}

func NewTelegramSender(opts TelegramOptions) *TelegramSender {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &TelegramSender{
		token:      opts.BotToken,
		chatID:     opts.ChatID,
		httpClient: httpClient,
	}
}

func (s *TelegramSender) HasCredentials() bool {
	return s.token != "" && s.chatID != 0
}

// Send delivers one MarkdownV2 message to the configured chat. The bot is
// dialed lazily on first use so a missing token only fails when notifications
// are actually attempted.
func (s *TelegramSender) Send(text string) error {
	if !s.HasCredentials() {
		return ErrMissingTelegramToken
	}
	if s.bot == nil {
		bot, err := tgbotapi.NewBotAPIWithClient(s.token, tgbotapi.APIEndpoint, s.httpClient)
		if err != nil {
			return fmt.Errorf("telegram: connect bot: %w", err)
		}
		s.bot = bot
	}
	msg := tgbotapi.NewMessage(s.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	msg.DisableWebPagePreview = true
	if _, err := s.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	return nil
}

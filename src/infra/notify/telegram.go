package notify

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/contre95/hotfolder/src/features/hotfolder"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// MessageSender is the part of *tgbotapi.BotAPI the notifier needs.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram sends one message per event to each configured chat.
type Telegram struct {
	bot     MessageSender
	chatIDs []int64
}

// NewTelegram creates a Telegram notifier.
func NewTelegram(bot MessageSender, chatIDs []int64) *Telegram {
	return &Telegram{bot: bot, chatIDs: chatIDs}
}

func (t *Telegram) Publish(ctx context.Context, event hotfolder.WatcherEvent) error {
	text := fmt.Sprintf("📥 *New file* in `%s`\n`%s`", escapeCode(event.FolderID), escapeCode(filepath.Base(event.Path)))
	var errs []error
	for _, chatID := range t.chatIDs {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		msg := tgbotapi.NewMessage(chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		if _, err := t.bot.Send(msg); err != nil {
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}
	return errors.Join(errs...)
}

var codeEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`")

// escapeCode escapes text for a MarkdownV2 code span.
func escapeCode(text string) string {
	return codeEscaper.Replace(text)
}

package hotfolder

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramHandler handles Telegram commands for hot folders
type TelegramHandler struct {
	registry *Registry
}

// NewTelegramHandler creates a new Telegram handler for hot folders
func NewTelegramHandler(registry *Registry) *TelegramHandler {
	return &TelegramHandler{registry: registry}
}

// GetCommands returns the commands this handler answers.
func (h *TelegramHandler) GetCommands() map[string]string {
	return map[string]string{
		"folders": "List watched hot folders",
		"unwatch": "Stop watching a hot folder: /unwatch <id>",
	}
}

// HandleCommand answers command in chatID.
func (h *TelegramHandler) HandleCommand(bot *tgbotapi.BotAPI, chatID int64, command string, args string) error {
	text, err := h.Reply(command, args)
	if err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	_, err = bot.Send(msg)
	return err
}

// Reply builds the markdown answer for command.
func (h *TelegramHandler) Reply(command string, args string) (string, error) {
	switch command {
	case "folders":
		statuses := h.registry.Statuses()
		if len(statuses) == 0 {
			return "📭 *Hot folders*\n\nNothing is being watched", nil
		}
		var b strings.Builder
		b.WriteString("📂 *Hot folders*\n")
		for _, status := range statuses {
			exts := "any"
			if len(status.Extensions) > 0 {
				exts = strings.Join(status.Extensions, ", ")
			}
			fmt.Fprintf(&b, "\n• `%s` → `%s` (%s)", status.ID, status.Path, exts)
		}
		return b.String(), nil
	case "unwatch":
		id := strings.TrimSpace(args)
		if id == "" {
			return "❌ Usage: `/unwatch <id>`", nil
		}
		if !h.registry.IsWatching(id) {
			return fmt.Sprintf("ℹ️ `%s` is not being watched", id), nil
		}
		if err := h.registry.StopWatching(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("🛑 Stopped watching `%s`", id), nil
	default:
		return "", fmt.Errorf("unknown hot folder command %q", command)
	}
}

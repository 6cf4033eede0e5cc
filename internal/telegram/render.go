package telegram

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/chat"
)

// BotAPI подмножество методов клиента Bot API, используемое шлюзом.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Sender отправляет ответы машины состояний в Telegram.
type Sender struct {
	api    BotAPI
	logger *zap.Logger
}

// NewSender создаёт отправителя ответов.
func NewSender(api BotAPI, logger *zap.Logger) *Sender {
	return &Sender{api: api, logger: logger}
}

// Deliver подтверждает нажатие кнопки и отправляет сообщения ответа.
func (s *Sender) Deliver(ctx context.Context, in Inbound, resp chat.Response) error {
	if in.CallbackID != "" {
		if _, err := s.api.Request(tgbotapi.NewCallback(in.CallbackID, resp.Notice)); err != nil {
			s.logger.Warn("answer callback error", zap.Error(err), zap.Int64("userID", in.UserID))
		}
	}

	var errs []error
	for _, r := range resp.Replies {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.deliverReply(in, r); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Sender) deliverReply(in Inbound, r chat.Reply) error {
	if canEdit(in, r) {
		_, err := s.api.Send(editConfig(in, r))
		if err == nil || isNotModified(err) {
			return nil
		}
		s.logger.Warn("edit message failed, sending new", zap.Error(err), zap.Int64("userID", in.UserID))
	}

	if _, err := s.api.Send(messageConfig(in.ChatID, r)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// canEdit сообщает, можно ли заменить сообщение с нажатой кнопкой: редактировать можно только inline-клавиатуру.
func canEdit(in Inbound, r chat.Reply) bool {
	if !r.Edit || in.CallbackID == "" || in.MessageID == 0 {
		return false
	}
	switch r.Keyboard.(type) {
	case nil, chat.InlineKeyboard:
		return true
	default:
		return false
	}
}

func editConfig(in Inbound, r chat.Reply) tgbotapi.EditMessageTextConfig {
	cfg := tgbotapi.NewEditMessageText(in.ChatID, in.MessageID, r.Text)
	if r.Markdown {
		cfg.ParseMode = tgbotapi.ModeMarkdown
	}
	if kb, ok := r.Keyboard.(chat.InlineKeyboard); ok {
		markup := inlineMarkup(kb)
		cfg.ReplyMarkup = &markup
	}
	return cfg
}

func messageConfig(chatID int64, r chat.Reply) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}
	if markup := replyMarkup(r.Keyboard); markup != nil {
		msg.ReplyMarkup = markup
	}
	return msg
}

func replyMarkup(kb chat.Keyboard) any {
	switch k := kb.(type) {
	case chat.ReplyKeyboard:
		rows := make([][]tgbotapi.KeyboardButton, 0, len(k.Rows))
		for _, row := range k.Rows {
			buttons := make([]tgbotapi.KeyboardButton, 0, len(row))
			for _, b := range row {
				btn := tgbotapi.NewKeyboardButton(b.Label)
				btn.RequestContact = b.RequestContact
				btn.RequestLocation = b.RequestLocation
				buttons = append(buttons, btn)
			}
			rows = append(rows, buttons)
		}
		markup := tgbotapi.NewReplyKeyboard(rows...)
		markup.OneTimeKeyboard = k.OneTime
		return markup
	case chat.InlineKeyboard:
		return inlineMarkup(k)
	case chat.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(false)
	default:
		return nil
	}
}

func inlineMarkup(kb chat.InlineKeyboard) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(kb.Rows))
	for _, row := range kb.Rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Action.Token()))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func isNotModified(err error) bool {
	var tgErr *tgbotapi.Error
	if errors.As(err, &tgErr) {
		return strings.Contains(tgErr.Message, "message is not modified")
	}
	return strings.Contains(err.Error(), "message is not modified")
}

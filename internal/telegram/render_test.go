package telegram

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/chat"
)

var buttonPress = Inbound{UserID: 1, ChatID: 1, MessageID: 55, CallbackID: "cb", Event: chat.Button{}}

func TestDeliverEditsInlineScreen(t *testing.T) {
	api := &stubAPI{}
	s := NewSender(api, zap.NewNop())

	resp := chat.Response{
		Notice: "Savatcha tozalandi.",
		Replies: []chat.Reply{{
			Text:     "*Fast Food* bo'limi.",
			Markdown: true,
			Edit:     true,
			Keyboard: chat.InlineKeyboard{Rows: [][]chat.InlineButton{
				{{Label: "➕", Action: chat.IncreaseQuantity{Item: "item_h"}}},
			}},
		}},
	}
	require.NoError(t, s.Deliver(context.Background(), buttonPress, resp))

	require.Len(t, api.requests, 1)
	cb, ok := api.requests[0].(tgbotapi.CallbackConfig)
	require.True(t, ok)
	assert.Equal(t, "cb", cb.CallbackQueryID)
	assert.Equal(t, "Savatcha tozalandi.", cb.Text)

	require.Len(t, api.sent, 1)
	edit, ok := api.sent[0].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 55, edit.MessageID)
	assert.Equal(t, tgbotapi.ModeMarkdown, edit.ParseMode)
	require.NotNil(t, edit.ReplyMarkup)
	assert.Equal(t, "qty_inc:item_h", *edit.ReplyMarkup.InlineKeyboard[0][0].CallbackData)
}

func TestDeliverReplyKeyboardIsSentAsNewMessage(t *testing.T) {
	api := &stubAPI{}
	s := NewSender(api, zap.NewNop())

	resp := chat.Response{Replies: []chat.Reply{{
		Text: "Ro'yxatdan o'tish uchun telefon raqamingizni yuboring:",
		Edit: true,
		Keyboard: chat.ReplyKeyboard{
			Rows:    [][]chat.KeyButton{{{Label: "📞 Mening raqamimni yuborish", RequestContact: true}}},
			OneTime: true,
		},
	}}}
	require.NoError(t, s.Deliver(context.Background(), Inbound{UserID: 1, ChatID: 1}, resp))

	assert.Empty(t, api.requests)
	require.Len(t, api.sent, 1)
	msg, ok := api.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	markup, ok := msg.ReplyMarkup.(tgbotapi.ReplyKeyboardMarkup)
	require.True(t, ok)
	assert.True(t, markup.OneTimeKeyboard)
	assert.True(t, markup.Keyboard[0][0].RequestContact)
}

func TestDeliverIgnoresNotModified(t *testing.T) {
	api := &stubAPI{sendErr: func(c tgbotapi.Chattable) error {
		return &tgbotapi.Error{Code: 400, Message: "Bad Request: message is not modified"}
	}}
	s := NewSender(api, zap.NewNop())

	resp := chat.Response{Replies: []chat.Reply{{Text: "same", Edit: true}}}
	require.NoError(t, s.Deliver(context.Background(), buttonPress, resp))
	assert.Len(t, api.sent, 1)
}

func TestDeliverFallsBackToNewMessage(t *testing.T) {
	api := &stubAPI{sendErr: func(c tgbotapi.Chattable) error {
		if _, ok := c.(tgbotapi.EditMessageTextConfig); ok {
			return errors.New("message to edit not found")
		}
		return nil
	}}
	s := NewSender(api, zap.NewNop())

	resp := chat.Response{Replies: []chat.Reply{{Text: "Kategoriyani tanlang:", Edit: true}}}
	require.NoError(t, s.Deliver(context.Background(), buttonPress, resp))

	require.Len(t, api.sent, 2)
	_, ok := api.sent[1].(tgbotapi.MessageConfig)
	assert.True(t, ok)
}

func TestDeliverReportsSendError(t *testing.T) {
	api := &stubAPI{sendErr: func(c tgbotapi.Chattable) error { return errors.New("network down") }}
	s := NewSender(api, zap.NewNop())

	resp := chat.Response{Replies: []chat.Reply{{Text: "a"}, {Text: "b", Keyboard: chat.RemoveKeyboard{}}}}
	err := s.Deliver(context.Background(), Inbound{UserID: 1, ChatID: 1}, resp)
	assert.Error(t, err)
	assert.Len(t, api.sent, 2)
}

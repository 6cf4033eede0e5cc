// Package telegram связывает Bot API с машиной состояний: разбирает обновления, распределяет их
// по воркерам и отрисовывает ответы.
package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mmeshcher/makburgers-bot/internal/chat"
)

// Inbound разобранное обновление.
type Inbound struct {
	UserID     int64
	ChatID     int64
	MessageID  int
	CallbackID string
	Event      chat.Event
}

// Decode преобразует обновление Bot API в событие. Неподдерживаемые обновления отбрасываются.
func Decode(u tgbotapi.Update) (Inbound, bool) {
	if cq := u.CallbackQuery; cq != nil {
		if cq.From == nil {
			return Inbound{}, false
		}
		in := Inbound{
			UserID:     cq.From.ID,
			ChatID:     cq.From.ID,
			CallbackID: cq.ID,
			Event:      chat.Button{Action: chat.ParseToken(cq.Data)},
		}
		if cq.Message != nil {
			in.MessageID = cq.Message.MessageID
			if cq.Message.Chat != nil {
				in.ChatID = cq.Message.Chat.ID
			}
		}
		return in, true
	}

	m := u.Message
	if m == nil || m.From == nil || m.Chat == nil {
		return Inbound{}, false
	}

	in := Inbound{UserID: m.From.ID, ChatID: m.Chat.ID, MessageID: m.MessageID}
	switch {
	case m.IsCommand() && m.Command() == "start":
		in.Event = chat.Start{}
	case m.Contact != nil:
		in.Event = chat.Contact{
			Phone:     m.Contact.PhoneNumber,
			UserID:    m.Contact.UserID,
			FirstName: m.Contact.FirstName,
			LastName:  m.Contact.LastName,
		}
	case m.Location != nil:
		in.Event = chat.Location{Latitude: m.Location.Latitude, Longitude: m.Location.Longitude}
	case m.Text != "":
		in.Event = chat.Text{Text: m.Text}
	default:
		return Inbound{}, false
	}
	return in, true
}

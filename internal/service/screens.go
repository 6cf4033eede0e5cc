package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mmeshcher/makburgers-bot/internal/chat"
	"github.com/mmeshcher/makburgers-bot/internal/model"
	"github.com/mmeshcher/makburgers-bot/internal/order"
)

func mainMenu() chat.Reply {
	return chat.Reply{
		Text: textMainMenu,
		Keyboard: chat.ReplyKeyboard{Rows: [][]chat.KeyButton{
			{{Label: labelOrder}, {Label: labelCart}},
		}},
	}
}

func contactPrompt(text string) chat.Reply {
	return chat.Reply{
		Text: text,
		Keyboard: chat.ReplyKeyboard{
			Rows:    [][]chat.KeyButton{{{Label: textShareContact, RequestContact: true}}},
			OneTime: true,
		},
	}
}

func locationPrompt() chat.Reply {
	return chat.Reply{
		Text: textAskLocation,
		Keyboard: chat.ReplyKeyboard{
			Rows: [][]chat.KeyButton{
				{{Label: labelSendLocation, RequestLocation: true}},
				{{Label: labelCancel}},
			},
			OneTime: true,
		},
	}
}

func deliveryPrompt() chat.Reply {
	return chat.Reply{
		Text: textChooseDelivery,
		Edit: true,
		Keyboard: chat.InlineKeyboard{Rows: [][]chat.InlineButton{{
			{Label: labelCourier, Action: chat.ChooseDelivery{Delivery: true}},
			{Label: labelPickup, Action: chat.ChooseDelivery{Delivery: false}},
		}}},
	}
}

// categoriesScreen зависит только от каталога и корзины.
func (s *Service) categoriesScreen(sess *model.Session, edit bool) chat.Reply {
	sess.Enter(model.StateBrowsingCategories)

	var b strings.Builder
	summary, total := s.engine.Summarize(sess.Cart)
	b.WriteString(summary)
	if total > 0 {
		b.WriteString("\n\n")
		fmt.Fprintf(&b, textTotal, order.FormatAmount(total))
	}
	b.WriteString("\n\n")
	b.WriteString(textChooseCategory)

	rows := make([][]chat.InlineButton, 0, len(s.catalog.Categories())+1)
	for _, cat := range s.catalog.Categories() {
		rows = append(rows, []chat.InlineButton{{Label: cat.Label(), Action: chat.SelectCategory{Name: cat.Name}}})
	}
	if sess.Cart.Active() {
		rows = append(rows, []chat.InlineButton{{Label: labelCart, Action: chat.ViewCart{}}})
	}

	return chat.Reply{Text: b.String(), Markdown: true, Edit: edit, Keyboard: chat.InlineKeyboard{Rows: rows}}
}

func (s *Service) itemsScreen(category string, cart model.Cart) (chat.Reply, error) {
	items, err := s.catalog.ItemsIn(category)
	if err != nil {
		return chat.Reply{}, err
	}

	rows := make([][]chat.InlineButton, 0, 2*len(items)+2)
	for _, item := range items {
		rows = append(rows,
			[]chat.InlineButton{{
				Label:  fmt.Sprintf(textItemLine, item.Name, order.FormatAmount(item.Price)),
				Action: chat.Ignore{},
			}},
			[]chat.InlineButton{
				{Label: labelDecrease, Action: chat.DecreaseQuantity{Item: item.Code}},
				{Label: strconv.Itoa(cart[item.Code]), Action: chat.Ignore{}},
				{Label: labelIncrease, Action: chat.IncreaseQuantity{Item: item.Code}},
			},
		)
	}
	rows = append(rows,
		[]chat.InlineButton{{Label: labelCart, Action: chat.ViewCart{}}},
		[]chat.InlineButton{{Label: labelBackCategories, Action: chat.BackToCategories{}}},
	)

	return chat.Reply{
		Text:     fmt.Sprintf(textCategoryHeader, order.EscapeMarkdown(category)),
		Markdown: true,
		Edit:     true,
		Keyboard: chat.InlineKeyboard{Rows: rows},
	}, nil
}

func (s *Service) cartScreen(sess *model.Session, edit bool) chat.Reply {
	sess.Enter(model.StateViewingCart)

	summary, total := s.engine.Summarize(sess.Cart)
	if total == 0 {
		return chat.Reply{
			Text:     textCartHeader + textCartEmpty,
			Markdown: true,
			Edit:     edit,
			Keyboard: chat.InlineKeyboard{Rows: [][]chat.InlineButton{
				{{Label: labelOrder, Action: chat.BackToCategories{}}},
			}},
		}
	}

	return chat.Reply{
		Text:     textCartHeader + summary + "\n\n" + fmt.Sprintf(textTotal, order.FormatAmount(total)),
		Markdown: true,
		Edit:     edit,
		Keyboard: chat.InlineKeyboard{Rows: [][]chat.InlineButton{
			{{Label: labelCheckout, Action: chat.StartCheckout{}}},
			{{Label: labelClearCart, Action: chat.ClearCart{}}},
			{{Label: labelContinue, Action: chat.BackToCategories{}}},
		}},
	}
}

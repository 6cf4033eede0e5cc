package order

import (
	"fmt"
	"strings"

	"github.com/mmeshcher/makburgers-bot/internal/model"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// EscapeMarkdown экранирует служебные символы разметки Markdown.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// RenderTicket возвращает текст тикета заказа в разметке Markdown.
func RenderTicket(t model.OrderTicket) string {
	var b strings.Builder

	id := t.ID
	if len(id) > 8 {
		id = id[:8]
	}

	fmt.Fprintf(&b, "🆕 *Yangi buyurtma* #%s\n\n", EscapeMarkdown(id))
	fmt.Fprintf(&b, "👤 Mijoz: %s\n", EscapeMarkdown(t.Name))
	fmt.Fprintf(&b, "📞 Telefon: %s\n", EscapeMarkdown(t.Phone))
	fmt.Fprintf(&b, "🆔 ID: %d\n", t.UserID)
	fmt.Fprintf(&b, "🚚 Usul: %s\n\n", t.Delivery.Label())

	if len(t.Lines) == 0 {
		b.WriteString(EmptyCartText)
	} else {
		b.WriteString(EscapeMarkdown(renderLines(t.Lines)))
	}

	fmt.Fprintf(&b, "\n\n*Jami: %s so'm*", FormatAmount(t.Total))

	if t.Delivery == model.DeliveryCourier && t.Location != nil {
		fmt.Fprintf(&b, "\n📍 Manzil: %.6f, %.6f", t.Location.Latitude, t.Location.Longitude)
	}

	return b.String()
}

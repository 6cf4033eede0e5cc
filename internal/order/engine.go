// Package order реализует расчёты над корзиной: итоги, изменение количества и формирование тикета заказа.
package order

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmeshcher/makburgers-bot/internal/catalog"
	"github.com/mmeshcher/makburgers-bot/internal/model"
)

// EmptyCartText выводится вместо списка позиций для пустой корзины.
const EmptyCartText = "Savatchangiz bo'sh."

// Engine выполняет расчёты над корзиной по данным каталога.
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine создаёт движок заказов для указанного каталога.
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Lines возвращает активные строки корзины в порядке каталога. Неизвестные коды пропускаются.
func (e *Engine) Lines(cart model.Cart) []model.OrderLine {
	var lines []model.OrderLine
	for _, item := range e.catalog.Items() {
		qty := cart[item.Code]
		if qty <= 0 {
			continue
		}
		lines = append(lines, model.OrderLine{
			ItemCode:  item.Code,
			Name:      item.Name,
			Quantity:  qty,
			UnitPrice: item.Price,
			Subtotal:  int64(qty) * item.Price,
		})
	}
	return lines
}

// Summarize возвращает текст с позициями корзины и итоговую сумму.
func (e *Engine) Summarize(cart model.Cart) (string, int64) {
	lines := e.Lines(cart)
	if len(lines) == 0 {
		return EmptyCartText, 0
	}
	return renderLines(lines), total(lines)
}

// Total возвращает итоговую сумму корзины.
func (e *Engine) Total(cart model.Cart) int64 {
	return total(e.Lines(cart))
}

// SetQuantity изменяет количество позиции на delta и возвращает новое значение. Количество не опускается ниже нуля.
func (e *Engine) SetQuantity(cart model.Cart, code string, delta int) int {
	qty := cart[code] + delta
	if qty < 0 {
		qty = 0
	}
	cart[code] = qty
	return qty
}

// Clear очищает корзину.
func (e *Engine) Clear(cart model.Cart) {
	clear(cart)
}

// ToAdminPayload собирает тикет заказа для администратора. Координаты сохраняются только для доставки.
func (e *Engine) ToAdminPayload(id string, profile model.UserProfile, cart model.Cart, method model.DeliveryMethod, coords *model.Coordinates, now time.Time) model.OrderTicket {
	lines := e.Lines(cart)
	ticket := model.OrderTicket{
		ID:        id,
		UserID:    profile.ID,
		Name:      profile.Name,
		Phone:     profile.Phone,
		Lines:     lines,
		Total:     total(lines),
		Delivery:  method,
		CreatedAt: now,
	}
	if method == model.DeliveryCourier && coords != nil {
		c := *coords
		ticket.Location = &c
	}
	return ticket
}

func total(lines []model.OrderLine) int64 {
	var sum int64
	for _, l := range lines {
		sum += l.Subtotal
	}
	return sum
}

func renderLines(lines []model.OrderLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "▪️ %s x %d dona = %s so'm", l.Name, l.Quantity, FormatAmount(l.Subtotal))
	}
	return b.String()
}

// FormatAmount форматирует сумму с разделителем разрядов: 15000 -> "15,000".
func FormatAmount(amount int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", amount)
}

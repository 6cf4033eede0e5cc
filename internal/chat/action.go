package chat

import "strings"

// Action действие, закодированное в inline-кнопке. Набор реализаций закрыт.
type Action interface {
	// Token возвращает строку маршрутизации, которую Telegram вернёт при нажатии.
	Token() string
	action()
}

type (
	// SelectCategory открывает раздел меню.
	SelectCategory struct{ Name string }
	// IncreaseQuantity увеличивает количество позиции на единицу.
	IncreaseQuantity struct{ Item string }
	// DecreaseQuantity уменьшает количество позиции на единицу.
	DecreaseQuantity struct{ Item string }
	// ViewCart показывает корзину.
	ViewCart struct{}
	// ClearCart очищает корзину.
	ClearCart struct{}
	// StartCheckout начинает оформление заказа.
	StartCheckout struct{}
	// ChooseDelivery выбирает доставку (true) или самовывоз (false).
	ChooseDelivery struct{ Delivery bool }
	// ConfirmLocation подтверждает или отклоняет геопозицию.
	ConfirmLocation struct{ Confirmed bool }
	// BackToCategories возвращает к списку разделов.
	BackToCategories struct{}
	// Ignore кнопка без действия.
	Ignore struct{}
	// Stale нераспознанная строка маршрутизации.
	Stale struct{ Raw string }
)

const (
	prefixCategory = "cat:"
	prefixInc      = "qty_inc:"
	prefixDec      = "qty_dec:"

	tokenCartView       = "cart:view"
	tokenCartClear      = "cart:clear"
	tokenCheckout       = "checkout:start"
	tokenDeliveryYes    = "delivery:yes"
	tokenDeliveryNo     = "delivery:no"
	tokenConfirmYes     = "confirm:yes"
	tokenConfirmNo      = "confirm:no"
	tokenBackCategories = "back:categories"
	tokenIgnore         = "ignore"
)

func (a SelectCategory) Token() string   { return prefixCategory + a.Name }
func (a IncreaseQuantity) Token() string { return prefixInc + a.Item }
func (a DecreaseQuantity) Token() string { return prefixDec + a.Item }
func (ViewCart) Token() string           { return tokenCartView }
func (ClearCart) Token() string          { return tokenCartClear }
func (StartCheckout) Token() string      { return tokenCheckout }
func (BackToCategories) Token() string   { return tokenBackCategories }
func (Ignore) Token() string             { return tokenIgnore }
func (a Stale) Token() string            { return a.Raw }

func (a ChooseDelivery) Token() string {
	if a.Delivery {
		return tokenDeliveryYes
	}
	return tokenDeliveryNo
}

func (a ConfirmLocation) Token() string {
	if a.Confirmed {
		return tokenConfirmYes
	}
	return tokenConfirmNo
}

func (SelectCategory) action()   {}
func (IncreaseQuantity) action() {}
func (DecreaseQuantity) action() {}
func (ViewCart) action()         {}
func (ClearCart) action()        {}
func (StartCheckout) action()    {}
func (ChooseDelivery) action()   {}
func (ConfirmLocation) action()  {}
func (BackToCategories) action() {}
func (Ignore) action()           {}
func (Stale) action()            {}

// ParseToken разбирает строку маршрутизации. Нераспознанные строки возвращаются как Stale.
func ParseToken(data string) Action {
	switch data {
	case tokenCartView:
		return ViewCart{}
	case tokenCartClear:
		return ClearCart{}
	case tokenCheckout:
		return StartCheckout{}
	case tokenDeliveryYes:
		return ChooseDelivery{Delivery: true}
	case tokenDeliveryNo:
		return ChooseDelivery{Delivery: false}
	case tokenConfirmYes:
		return ConfirmLocation{Confirmed: true}
	case tokenConfirmNo:
		return ConfirmLocation{Confirmed: false}
	case tokenBackCategories:
		return BackToCategories{}
	case tokenIgnore:
		return Ignore{}
	}

	if name, ok := strings.CutPrefix(data, prefixCategory); ok && name != "" {
		return SelectCategory{Name: name}
	}
	if code, ok := strings.CutPrefix(data, prefixInc); ok && code != "" {
		return IncreaseQuantity{Item: code}
	}
	if code, ok := strings.CutPrefix(data, prefixDec); ok && code != "" {
		return DecreaseQuantity{Item: code}
	}

	return Stale{Raw: data}
}

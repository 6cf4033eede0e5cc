package model

// State описывает шаг диалога пользователя.
type State string

const (
	StateUnregistered           State = "unregistered"
	StateAwaitingContact        State = "awaiting_contact"
	StateMainMenu               State = "main_menu"
	StateBrowsingCategories     State = "browsing_categories"
	StateBrowsingItems          State = "browsing_items"
	StateViewingCart            State = "viewing_cart"
	StateChoosingDeliveryMethod State = "choosing_delivery"
	StateAwaitingLocation       State = "awaiting_location"
	StateConfirmingLocation     State = "confirming_location"
)

// SessionContext содержит временные поля текущего оформления заказа.
type SessionContext struct {
	category string
	delivery DeliveryMethod
	location *Coordinates
}

// Session содержит изменяемое состояние диалога одного пользователя. Не сохраняется между перезапусками.
type Session struct {
	State   State
	Cart    Cart
	Context SessionContext
}

// OpenCategory возвращает открытый раздел. Раздел доступен только в состоянии просмотра позиций.
func (s *Session) OpenCategory() (string, bool) {
	if s.State != StateBrowsingItems || s.Context.category == "" {
		return "", false
	}
	return s.Context.category, true
}

// OpenItems переводит сессию в просмотр позиций указанного раздела.
func (s *Session) OpenItems(category string) {
	s.State = StateBrowsingItems
	s.Context.category = category
}

// Delivery возвращает выбранный способ получения.
func (s *Session) Delivery() DeliveryMethod {
	return s.Context.delivery
}

// AwaitLocation фиксирует выбор доставки и переводит сессию в ожидание геопозиции.
func (s *Session) AwaitLocation() {
	s.State = StateAwaitingLocation
	s.Context.delivery = DeliveryCourier
	s.Context.location = nil
}

// ProposeLocation запоминает координаты, ожидающие подтверждения.
func (s *Session) ProposeLocation(c Coordinates) {
	s.State = StateConfirmingLocation
	s.Context.location = &c
}

// PendingLocation возвращает координаты, ожидающие подтверждения.
func (s *Session) PendingLocation() (Coordinates, bool) {
	if s.State != StateConfirmingLocation || s.Context.location == nil {
		return Coordinates{}, false
	}
	return *s.Context.location, true
}

// Enter переводит сессию в указанное состояние и очищает контекст оформления.
func (s *Session) Enter(state State) {
	s.State = state
	s.Context = SessionContext{}
}

// Reset возвращает сессию в главное меню.
func (s *Session) Reset() {
	s.Enter(StateMainMenu)
}

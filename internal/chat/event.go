// Package chat описывает входящие события и исходящие ответы бота независимо от транспорта.
package chat

// Event входящее событие пользователя. Набор реализаций закрыт.
type Event interface {
	Kind() string
	event()
}

// Start команда /start.
type Start struct{}

// Text произвольное текстовое сообщение или нажатие кнопки обычной клавиатуры.
type Text struct {
	Text string
}

// Contact отправленный контакт.
type Contact struct {
	Phone     string
	UserID    int64
	FirstName string
	LastName  string
}

// Location отправленная геопозиция.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Button нажатие inline-кнопки.
type Button struct {
	Action Action
}

func (Start) Kind() string    { return "start" }
func (Text) Kind() string     { return "text" }
func (Contact) Kind() string  { return "contact" }
func (Location) Kind() string { return "location" }
func (Button) Kind() string   { return "button" }

func (Start) event()    {}
func (Text) event()     {}
func (Contact) event()  {}
func (Location) event() {}
func (Button) event()   {}

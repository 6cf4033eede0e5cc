package chat

// Response результат обработки события: всплывающее уведомление для inline-кнопки и список сообщений.
type Response struct {
	Notice  string
	Replies []Reply
}

// Reply исходящее сообщение пользователю.
type Reply struct {
	Text     string
	Markdown bool
	// Edit заменяет сообщение с нажатой кнопкой вместо отправки нового. Только для inline-клавиатур.
	Edit     bool
	Keyboard Keyboard
}

// Keyboard клавиатура сообщения. Набор реализаций закрыт.
type Keyboard interface {
	keyboard()
}

// ReplyKeyboard постоянная клавиатура под полем ввода.
type ReplyKeyboard struct {
	Rows    [][]KeyButton
	OneTime bool
}

// KeyButton кнопка постоянной клавиатуры.
type KeyButton struct {
	Label           string
	RequestContact  bool
	RequestLocation bool
}

// InlineKeyboard клавиатура, прикреплённая к сообщению.
type InlineKeyboard struct {
	Rows [][]InlineButton
}

// InlineButton кнопка inline-клавиатуры.
type InlineButton struct {
	Label  string
	Action Action
}

// RemoveKeyboard убирает постоянную клавиатуру.
type RemoveKeyboard struct{}

func (ReplyKeyboard) keyboard()  {}
func (InlineKeyboard) keyboard() {}
func (RemoveKeyboard) keyboard() {}

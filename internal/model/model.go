// Package model содержит доменные сущности бота заказов Makburgers.
package model

import (
	"strings"
	"time"
)

// UserProfile представляет зарегистрированного пользователя бота.
type UserProfile struct {
	ID           int64     `json:"id"`
	Phone        string    `json:"phone"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Registered сообщает, заполнены ли телефон и имя пользователя.
func (p UserProfile) Registered() bool {
	return strings.TrimSpace(p.Phone) != "" && strings.TrimSpace(p.Name) != ""
}

// CatalogItem описывает позицию меню.
type CatalogItem struct {
	Code     string
	Name     string
	Price    int64
	Category string
}

// Category описывает раздел меню. Имя раздела используется как ключ маршрутизации.
type Category struct {
	Name  string
	Icon  string
	Items []CatalogItem
}

// Label возвращает подпись раздела для кнопки.
func (c Category) Label() string {
	if c.Icon == "" {
		return c.Name
	}
	return c.Icon + " " + c.Name
}

// Cart хранит количество по коду позиции. Нулевые записи считаются отсутствующими.
type Cart map[string]int

// Active сообщает, есть ли в корзине хотя бы одна позиция с ненулевым количеством.
func (c Cart) Active() bool {
	for _, qty := range c {
		if qty > 0 {
			return true
		}
	}
	return false
}

// DeliveryMethod описывает способ получения заказа.
type DeliveryMethod string

const (
	DeliveryPickup  DeliveryMethod = "pickup"
	DeliveryCourier DeliveryMethod = "delivery"
)

// Label возвращает подпись способа получения для тикета.
func (d DeliveryMethod) Label() string {
	switch d {
	case DeliveryPickup:
		return "Olib ketish"
	case DeliveryCourier:
		return "Yetkazib berish"
	default:
		return "Tanlanmagan"
	}
}

// Coordinates содержит географические координаты.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// OrderLine описывает строку заказа.
type OrderLine struct {
	ItemCode  string `json:"item_code"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

// OrderTicket представляет оформленный заказ, отправляемый администратору.
type OrderTicket struct {
	ID        string         `json:"id"`
	UserID    int64          `json:"user_id"`
	Name      string         `json:"name"`
	Phone     string         `json:"phone"`
	Lines     []OrderLine    `json:"lines"`
	Total     int64          `json:"total"`
	Delivery  DeliveryMethod `json:"delivery"`
	Location  *Coordinates   `json:"location,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

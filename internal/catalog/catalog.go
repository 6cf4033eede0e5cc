// Package catalog содержит статическое меню ресторана.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mmeshcher/makburgers-bot/internal/model"
)

// ErrNotFound возвращается при обращении к неизвестному разделу или позиции.
var ErrNotFound = errors.New("catalog entry not found")

// maxTokenLen ограничение Telegram на размер callback data.
const maxTokenLen = 64

// Catalog предоставляет доступ только на чтение к разделам и позициям меню.
type Catalog struct {
	categories []model.Category
	byName     map[string]int
	items      map[string]model.CatalogItem
}

// New проверяет разделы и строит каталог. Порядок разделов и позиций сохраняется.
func New(categories []model.Category) (*Catalog, error) {
	c := &Catalog{
		categories: make([]model.Category, 0, len(categories)),
		byName:     make(map[string]int, len(categories)),
		items:      make(map[string]model.CatalogItem),
	}

	for _, cat := range categories {
		if err := validateKey(cat.Name, "cat:"); err != nil {
			return nil, fmt.Errorf("category %q: %w", cat.Name, err)
		}
		if _, dup := c.byName[cat.Name]; dup {
			return nil, fmt.Errorf("duplicate category %q", cat.Name)
		}

		stored := model.Category{Name: cat.Name, Icon: cat.Icon, Items: make([]model.CatalogItem, 0, len(cat.Items))}
		for _, item := range cat.Items {
			if err := validateKey(item.Code, "qty_inc:"); err != nil {
				return nil, fmt.Errorf("item %q: %w", item.Code, err)
			}
			if _, dup := c.items[item.Code]; dup {
				return nil, fmt.Errorf("duplicate item code %q", item.Code)
			}
			if item.Price <= 0 {
				return nil, fmt.Errorf("item %q: price must be positive", item.Code)
			}
			item.Category = cat.Name
			c.items[item.Code] = item
			stored.Items = append(stored.Items, item)
		}

		c.byName[cat.Name] = len(c.categories)
		c.categories = append(c.categories, stored)
	}

	return c, nil
}

func validateKey(key, prefix string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("empty key")
	}
	if strings.ContainsAny(key, "\n\r") {
		return errors.New("key contains line breaks")
	}
	if len(prefix)+len(key) > maxTokenLen {
		return fmt.Errorf("routing token longer than %d bytes", maxTokenLen)
	}
	return nil
}

// Lookup возвращает позицию по коду вместе с названием её раздела.
func (c *Catalog) Lookup(code string) (model.CatalogItem, error) {
	item, ok := c.items[code]
	if !ok {
		return model.CatalogItem{}, fmt.Errorf("%w: item %q", ErrNotFound, code)
	}
	return item, nil
}

// Categories возвращает разделы в порядке объявления.
func (c *Catalog) Categories() []model.Category {
	out := make([]model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category возвращает раздел по имени.
func (c *Catalog) Category(name string) (model.Category, error) {
	idx, ok := c.byName[name]
	if !ok {
		return model.Category{}, fmt.Errorf("%w: category %q", ErrNotFound, name)
	}
	return c.categories[idx], nil
}

// ItemsIn возвращает позиции раздела в порядке объявления.
func (c *Catalog) ItemsIn(name string) ([]model.CatalogItem, error) {
	cat, err := c.Category(name)
	if err != nil {
		return nil, err
	}
	out := make([]model.CatalogItem, len(cat.Items))
	copy(out, cat.Items)
	return out, nil
}

// Contains сообщает, принадлежит ли позиция указанному разделу.
func (c *Catalog) Contains(category, code string) bool {
	item, err := c.Lookup(code)
	return err == nil && item.Category == category
}

// Items возвращает все позиции в порядке разделов.
func (c *Catalog) Items() []model.CatalogItem {
	out := make([]model.CatalogItem, 0, len(c.items))
	for _, cat := range c.categories {
		out = append(out, cat.Items...)
	}
	return out
}

// Package validation содержит функции валидации входных данных.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidPhone возвращается, если номер телефона не удаётся привести к формату E.164.
var ErrInvalidPhone = errors.New("invalid phone number")

var validate = validator.New()

var phoneSeparators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// NormalizePhone приводит номер телефона к формату E.164: убирает разделители и добавляет ведущий "+".
func NormalizePhone(raw string) (string, error) {
	phone := phoneSeparators.Replace(strings.TrimSpace(raw))
	if phone == "" {
		return "", ErrInvalidPhone
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}

	if err := validate.Var(phone, "required,e164"); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidPhone, raw)
	}

	return phone, nil
}

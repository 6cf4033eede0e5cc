// Package webhook предоставляет клиент Bot API для регистрации и удаления вебхука.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Path путь, по которому сервис принимает обновления.
const Path = "/webhook"

// ErrNotConfigured возвращается, если клиент создан без Bot API.
var ErrNotConfigured = errors.New("bot api client not configured")

// Requester выполняет произвольный метод Bot API.
type Requester interface {
	MakeRequest(endpoint string, params tgbotapi.Params) (*tgbotapi.APIResponse, error)
}

// Client управляет вебхуком бота.
type Client struct {
	api Requester
}

// APIError описывает отказ Bot API.
type APIError struct {
	StatusCode  int
	Description string
	RetryAfter  time.Duration
}

func (e *APIError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("bot api: status %d: %s (retry after %s)", e.StatusCode, e.Description, e.RetryAfter)
	}
	return fmt.Sprintf("bot api: status %d: %s", e.StatusCode, e.Description)
}

// NewClient создаёт клиент поверх Bot API.
func NewClient(api Requester) *Client {
	return &Client{api: api}
}

// Endpoint возвращает полный адрес вебхука для публичного хоста.
func Endpoint(host string) string {
	return strings.TrimRight(host, "/") + Path
}

// SetWebhook регистрирует адрес, на который Telegram будет отправлять обновления.
func (c *Client) SetWebhook(ctx context.Context, url, secret string) error {
	params := tgbotapi.Params{"url": url}
	params.AddNonEmpty("secret_token", secret)
	if err := params.AddInterface("allowed_updates", []string{"message", "callback_query"}); err != nil {
		return fmt.Errorf("encode allowed_updates: %w", err)
	}
	return c.call(ctx, "setWebhook", params)
}

// DeleteWebhook отключает вебхук, чтобы обновления можно было получать опросом.
func (c *Client) DeleteWebhook(ctx context.Context, dropPending bool) error {
	params := tgbotapi.Params{}
	params.AddBool("drop_pending_updates", dropPending)
	return c.call(ctx, "deleteWebhook", params)
}

func (c *Client) call(ctx context.Context, method string, params tgbotapi.Params) error {
	if c == nil || c.api == nil {
		return ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	resp, err := c.api.MakeRequest(method, params)
	if err != nil {
		var tgErr *tgbotapi.Error
		if errors.As(err, &tgErr) {
			return &APIError{
				StatusCode:  tgErr.Code,
				Description: tgErr.Message,
				RetryAfter:  time.Duration(tgErr.RetryAfter) * time.Second,
			}
		}
		return fmt.Errorf("%s: %w", method, err)
	}
	if resp == nil || !resp.Ok {
		apiErr := &APIError{Description: "unexpected response"}
		if resp != nil {
			apiErr.StatusCode = resp.ErrorCode
			apiErr.Description = resp.Description
		}
		return apiErr
	}
	return nil
}

// Package handler содержит HTTP-обработчики веб-сервиса бота: приём вебхука, проверку доступности и метрики.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/makburgers-bot/internal/middleware"
	"github.com/mmeshcher/makburgers-bot/internal/telegram"
)

// HomeText ответ страницы проверки доступности.
const HomeText = "Makburgers Bot veb-xizmati ishlamoqda!"

const maxUpdateSize = 1 << 20

// Submitter принимает обновления Telegram в обработку.
type Submitter interface {
	Submit(ctx context.Context, u tgbotapi.Update) error
}

// Handler реализует HTTP-обработчики веб-сервиса бота.
type Handler struct {
	gateway        Submitter
	logger         *zap.Logger
	secret         *middleware.SecretMiddleware
	metricsHandler http.Handler
}

// NewHandler создаёт обработчик. metricsHandler может быть nil, тогда /metrics не публикуется.
func NewHandler(gw Submitter, logger *zap.Logger, secret *middleware.SecretMiddleware, metricsHandler http.Handler) *Handler {
	return &Handler{
		gateway:        gw,
		logger:         logger,
		secret:         secret,
		metricsHandler: metricsHandler,
	}
}

type statusResponse struct {
	Status string `json:"status"`
}

// Webhook принимает обновление Telegram и ставит его в очередь обработки.
func (h *Handler) Webhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxUpdateSize)).Decode(&update); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := h.gateway.Submit(r.Context(), update); err != nil {
		if errors.Is(err, telegram.ErrStopped) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
		h.logger.Error("submit update error", zap.Error(err), zap.Int("updateID", update.UpdateID))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(statusResponse{Status: "ok"}); err != nil {
		h.logger.Error("encode webhook response error", zap.Error(err))
	}
}

// Home отвечает на проверку доступности сервиса.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(HomeText))
}

// Package health содержит обработчик проверки состояния сервиса.
package health

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v3"

	"hdnotes/internal/api/app/dto"
	"hdnotes/internal/api/app/http/middleware"
	"hdnotes/internal/api/app/http/response"
	"hdnotes/pkg/logger"
)

const (
	LogHealthRequested = "health check requested"

	MsgServerRunning = "Server is running"
	StatusOK         = "OK"
)

// StoreStatus сообщает состояние хранилища.
type StoreStatus interface {
	Status(ctx context.Context) string
}

// Handler отвечает на GET /api/health.
type Handler struct {
	store       StoreStatus
	environment logger.Environment
	responder   *response.Responder
	now         func() time.Time
}

// NewHandler создает обработчик; now == nil означает time.Now.
func NewHandler(store StoreStatus, env logger.Environment, r *response.Responder, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{store: store, environment: env, responder: r, now: now}
}

// Check возвращает 200 даже при недоступном хранилище; его состояние в поле database.
func (h *Handler) Check(c fiber.Ctx) error {
	requestCtx := middleware.RequestContext(c)
	logger.Log(requestCtx).Debug(requestCtx, LogHealthRequested)

	return h.responder.JSON(c, fiber.StatusOK, dto.HealthResponse{
		Message:     MsgServerRunning,
		Status:      StatusOK,
		Timestamp:   h.now().UTC(),
		Database:    h.store.Status(requestCtx),
		Environment: string(h.environment),
	})
}

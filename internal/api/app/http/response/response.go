// Package response переводит ошибки сценариев в HTTP ответы {message}.
package response

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"hdnotes/pkg/apperr"
)

// Сообщения для ответов без более точного текста.
const (
	MsgSomethingWentWrong = "Something went wrong!"
	MsgInternalError      = "Internal server error"
	MsgInvalidRequestBody = "Invalid request body"
	MsgRouteNotFound      = "Route not found"
)

// Body - тело ответа с ошибкой.
type Body struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Responder пишет ответы с ошибками; вне production добавляет текст исходной ошибки.
type Responder struct {
	production bool
}

// New создает Responder для окружения.
func New(production bool) *Responder {
	return &Responder{production: production}
}

// StatusFor возвращает HTTP статус для класса ошибки.
func StatusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation, apperr.KindConflict:
		return fiber.StatusBadRequest
	case apperr.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperr.KindForbidden:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// Error пишет ответ для err. Ошибки без класса получают 500 и fallback сообщение.
func (r *Responder) Error(c fiber.Ctx, err error, fallback string) error {
	kind := apperr.KindOf(err)
	status := StatusFor(kind)

	body := Body{Message: fallback}
	if msg, ok := apperr.MessageOf(err); ok && kind != apperr.KindUnknown {
		body.Message = msg
	}
	if status >= fiber.StatusInternalServerError && !r.production {
		body.Error = detail(err)
	}

	if sendErr := c.Status(status).JSON(body); sendErr != nil {
		return fmt.Errorf("sending error response: %w", sendErr)
	}
	return nil
}

// Message пишет {message} с заданным статусом.
func (r *Responder) Message(c fiber.Ctx, status int, message string) error {
	if err := c.Status(status).JSON(Body{Message: message}); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// JSON пишет произвольное тело с заданным статусом.
func (r *Responder) JSON(c fiber.Ctx, status int, body any) error {
	if err := c.Status(status).JSON(body); err != nil {
		return fmt.Errorf("sending response: %w", err)
	}
	return nil
}

// ErrorHandler обрабатывает ошибки, вернувшиеся из обработчиков fiber.
func (r *Responder) ErrorHandler(c fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		if fiberErr.Code == fiber.StatusNotFound {
			return r.Message(c, fiber.StatusNotFound, MsgRouteNotFound)
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return r.Message(c, fiberErr.Code, fiberErr.Message)
		}
	}
	return r.Error(c, err, MsgSomethingWentWrong)
}

// detail возвращает текст, который можно показать вне production.
func detail(err error) string {
	if err == nil {
		return MsgInternalError
	}
	return err.Error()
}

// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"

	"hdnotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

const (
	localsRequestContext = "requestContext"
	localsUser           = "user"
)

// NewRequestIDMiddleware присваивает запросу идентификатор и кладет контекст с ним в locals.
// Входящий X-Request-ID сохраняется.
func NewRequestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := logger.NewRequestIDContext(c.Context(), c.Get(HeaderRequestID))
		id, _ := logger.GetRequestID(requestCtx)

		c.Set(HeaderRequestID, id)
		c.Locals(localsRequestContext, requestCtx)

		return c.Next()
	}
}

// RequestContext возвращает контекст запроса с request_id.
func RequestContext(c fiber.Ctx) context.Context {
	if ctx, ok := c.Locals(localsRequestContext).(context.Context); ok {
		return ctx
	}
	return c.Context()
}

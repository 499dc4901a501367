package middleware

import (
	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hdnotes/pkg/logger"
)

// LogPreflightDownstreamError - ошибка цепочки, ответ которой заменен на пустой 200.
const LogPreflightDownstreamError = "preflight downstream handler failed"

// NewPreflightMiddleware отвечает 200 с пустым телом на любой OPTIONS запрос.
// Ставится перед CORS: заголовки CORS выставляются дальше по цепочке, статус и тело заменяются здесь.
func NewPreflightMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		if c.Method() != fiber.MethodOptions {
			return c.Next()
		}

		if err := c.Next(); err != nil {
			requestCtx := RequestContext(c)
			logger.Log(requestCtx).Debug(requestCtx, LogPreflightDownstreamError,
				zap.String("path", c.Path()), zap.Error(err))
		}

		c.Response().ResetBody()
		c.Status(fiber.StatusOK)
		return nil
	}
}

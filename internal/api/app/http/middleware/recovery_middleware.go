package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hdnotes/internal/api/app/http/response"
	"hdnotes/pkg/logger"
)

// NewRecoveryMiddleware создает новое промежуточное ПО для восстановления после паники.
func NewRecoveryMiddleware(r *response.Responder) fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		requestCtx := RequestContext(c)

		defer func() {
			if rec := recover(); rec != nil {
				log := logger.Log(requestCtx)
				log.Error(requestCtx, "server panic",
					zap.String("error", fmt.Sprintf("%v", rec)),
					zap.String("stack", string(debug.Stack())),
				)
				err = r.Error(c, fmt.Errorf("panic: %v", rec), response.MsgSomethingWentWrong)
			}
		}()

		return c.Next()
	}
}

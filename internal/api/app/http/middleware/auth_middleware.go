package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hdnotes/internal/api/app/http/response"
	"hdnotes/internal/auth/domain/entities"
	"hdnotes/internal/auth/domain/services"
	"hdnotes/internal/auth/ports/api"
	"hdnotes/pkg/logger"
)

// Константы для логирования.
const (
	LogAuthMiddleware = "auth middleware"
	LogAuthRejected   = "request rejected by auth middleware"

	bearerPrefix = "Bearer "
)

// NewAuthMiddleware проверяет bearer токен и кладет пользователя в locals.
func NewAuthMiddleware(users api.UserUseCase, r *response.Responder) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)
		log := logger.Log(requestCtx).With(zap.String("middleware", "auth"))
		log.Debug(requestCtx, LogAuthMiddleware)

		user, err := users.Authenticate(requestCtx, bearerToken(c.Get(fiber.HeaderAuthorization)))
		if err != nil {
			log.Debug(requestCtx, LogAuthRejected, zap.Error(err))
			return r.Error(c, err, services.ErrInvalidToken.Message)
		}

		c.Locals(localsUser, user)
		return c.Next()
	}
}

// CurrentUser возвращает пользователя, загруженного auth middleware.
func CurrentUser(c fiber.Ctx) (*entities.User, bool) {
	user, ok := c.Locals(localsUser).(*entities.User)
	return user, ok && user != nil
}

func bearerToken(header string) string {
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}

package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"hdnotes/internal/api/app/http/response"
	"hdnotes/internal/api/ports/ratelimit"
	"hdnotes/pkg/logger"
)

// MsgTooManyRequests - ответ при превышении лимита.
const MsgTooManyRequests = "Too many requests from this IP, please try again later."

const (
	headerRateLimitLimit     = "RateLimit-Limit"
	headerRateLimitRemaining = "RateLimit-Remaining"
	headerRateLimitReset     = "RateLimit-Reset"
)

// NewRateLimitMiddleware ограничивает число запросов с одного IP.
// Если хранилище лимитов недоступно, запрос пропускается.
func NewRateLimitMiddleware(limiter ratelimit.Limiter, r *response.Responder) fiber.Handler {
	return func(c fiber.Ctx) error {
		requestCtx := RequestContext(c)

		res, err := limiter.Allow(requestCtx, c.IP())
		if err != nil {
			logger.Log(requestCtx).Warn(requestCtx, "rate limiter unavailable, allowing request", zap.Error(err))
			return c.Next()
		}

		c.Set(headerRateLimitLimit, strconv.Itoa(res.Limit))
		c.Set(headerRateLimitRemaining, strconv.Itoa(res.Remaining))
		c.Set(headerRateLimitReset, strconv.Itoa(int(res.ResetAfter.Seconds())))

		if !res.Allowed {
			logger.Log(requestCtx).Info(requestCtx, "rate limit exceeded", zap.String("ip", c.IP()))
			return r.Message(c, fiber.StatusTooManyRequests, MsgTooManyRequests)
		}

		return c.Next()
	}
}

// Package request содержит разбор тел HTTP запросов.
package request

import "github.com/gofiber/fiber/v3"

// BindJSON разбирает тело запроса в out; пустое тело оставляет out нулевым,
// чтобы проверка обязательных полей вернула понятное сообщение.
func BindJSON(c fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	return c.Bind().JSON(out)
}

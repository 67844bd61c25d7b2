package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/domain"
)

// kindStatus mapea cada Kind de error de dominio a un status HTTP.
var kindStatus = map[domain.Kind]int{
	domain.KindInvalidInput:        fiber.StatusBadRequest,
	domain.KindNotFound:            fiber.StatusNotFound,
	domain.KindDuplicate:           fiber.StatusConflict,
	domain.KindUnauthorized:        fiber.StatusUnauthorized,
	domain.KindForbidden:           fiber.StatusForbidden,
	domain.KindConflict:            fiber.StatusConflict,
	domain.KindInsufficientStock:   fiber.StatusConflict,
	domain.KindAllocationIntegrity: fiber.StatusInternalServerError,
	domain.KindPersistence:         fiber.StatusInternalServerError,
}

// respondError traduce un error de dominio al cuerpo y status HTTP. Para
// stock insuficiente viajan los campos estructurados (producto, pedido,
// disponible); nunca viaja texto de remediación ni SQL.
func respondError(c *fiber.Ctx, err error) error {
	derr := domain.AsError(err)
	if derr == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code:    domain.KindUnknown.String(),
			Message: err.Error(),
		})
	}
	status, ok := kindStatus[derr.Kind]
	if !ok {
		status = fiber.StatusInternalServerError
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:      derr.Kind.String(),
		Message:   derr.Message,
		Product:   derr.Product,
		Requested: derr.Requested,
		Available: derr.Available,
	})
}

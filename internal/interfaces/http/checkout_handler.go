package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comercia/comercia-api/internal/application/checkout"
	"github.com/comercia/comercia-api/internal/application/dto"
)

// CheckoutHandler maneja el checkout online y el webhook de la pasarela
// (ambos públicos: el comprador no tiene cuenta).
type CheckoutHandler struct {
	uc *checkout.UseCase
}

// NewCheckoutHandler construye el handler.
func NewCheckoutHandler(uc *checkout.UseCase) *CheckoutHandler {
	return &CheckoutHandler{uc: uc}
}

// Checkout godoc
// @Summary      Checkout del carrito online
// @Description  Asigna lotes, registra la venta como carrito abandonado y devuelve la URL de redirección a la pasarela.
// @Tags         checkout
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CheckoutRequest  true  "Carrito + comprador"
// @Success      201   {object}  dto.CheckoutResponse
// @Failure      409   {object}  dto.ErrorResponse  "Stock insuficiente"
// @Router       /api/checkout [post]
func (h *CheckoutHandler) Checkout(c *fiber.Ctx) error {
	var in dto.CheckoutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Checkout(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Webhook godoc
// @Summary      Webhook de la pasarela de pagos
// @Description  approved marca la venta como pagada; rejected la cancela. Identifica la venta por referencia externa.
// @Tags         checkout
// @Accept       json
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/checkout/webhook [post]
func (h *CheckoutHandler) Webhook(c *fiber.Ctx) error {
	var in dto.PaymentWebhookRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "cuerpo inválido"})
	}
	if err := h.uc.HandleWebhook(in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusOK)
}

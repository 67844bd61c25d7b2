package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/comercia/comercia-api/internal/application/dto"
	"github.com/comercia/comercia-api/internal/application/usecase"
)

// PriceListHandler maneja listas de precios y su render a PDF (protegido).
type PriceListHandler struct {
	uc  *usecase.PriceListUseCase
	pdf usecase.PriceListPDFGenerator
}

// NewPriceListHandler construye el handler.
func NewPriceListHandler(uc *usecase.PriceListUseCase, pdf usecase.PriceListPDFGenerator) *PriceListHandler {
	return &PriceListHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Crear lista de precios
// @Tags         price_lists
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePriceListRequest  true  "Lista con sus filas"
// @Success      201   {object}  dto.PriceListResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/price-lists [post]
func (h *PriceListHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePriceListRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener lista de precios con sus filas
// @Tags         price_lists
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la lista"
// @Success      200  {object}  dto.PriceListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id} [get]
func (h *PriceListHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar listas de precios
// @Tags         price_lists
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"   default(20)
// @Param        offset  query  int  false  "Offset"   default(0)
// @Success      200     {object}  dto.PriceListListResponse
// @Router       /api/price-lists [get]
func (h *PriceListHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.QueryInt("limit", 20), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetPDF godoc
// @Summary      Descargar lista de precios en PDF
// @Tags         price_lists
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la lista"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id}/pdf [get]
func (h *PriceListHandler) GetPDF(c *fiber.Ctx) error {
	list, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	data, err := h.pdf.GeneratePriceListPDF(list)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="lista-precios-`+list.ID+`.pdf"`)
	return c.Send(data)
}

// Delete godoc
// @Summary      Eliminar lista de precios
// @Tags         price_lists
// @Security     Bearer
// @Param        id  path  string  true  "ID de la lista"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/price-lists/{id} [delete]
func (h *PriceListHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

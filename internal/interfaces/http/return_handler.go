package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ferreteria-api/internal/application/analytics"
	"github.com/jhoicas/ferreteria-api/internal/application/dto"
	"github.com/jhoicas/ferreteria-api/internal/application/inventory"
)

// ReturnHandler maneja devoluciones y la vista de productos con devoluciones.
type ReturnHandler struct {
	uc     *inventory.ReturnUseCase
	search *analytics.SearchUseCase
}

// NewReturnHandler construye el handler.
func NewReturnHandler(uc *inventory.ReturnUseCase, search *analytics.SearchUseCase) *ReturnHandler {
	return &ReturnHandler{uc: uc, search: search}
}

// Create godoc
// @Summary      Registrar devolución (incrementa returned del producto en la misma transacción)
// @Tags         returns
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateReturnRequest  true  "Devolución"
// @Success      201   {object}  dto.ReturnResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/returns [post]
func (h *ReturnHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar devoluciones
// @Tags         returns
// @Produce      json
// @Param        keyword    query  string  false  "Nombre o SKU"
// @Param        startDate  query  string  false  "Fecha inicial"
// @Param        endDate    query  string  false  "Fecha final"
// @Param        page       query  int     false  "Página (default 1)"
// @Param        limit      query  int     false  "Tamaño de página (default 100)"
// @Success      200  {object}  dto.ReturnListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/returns [get]
func (h *ReturnHandler) List(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Totales de devoluciones
// @Tags         returns
// @Produce      json
// @Success      200  {object}  dto.ReturnStatsResponse
// @Router       /api/returns/stats [get]
func (h *ReturnHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ReturnedProducts godoc
// @Summary      Productos con returned > 0 y resumen
// @Tags         returns
// @Produce      json
// @Param        keyword    query  string  false  "Nombre o SKU"
// @Param        startDate  query  string  false  "Fecha inicial"
// @Param        endDate    query  string  false  "Fecha final"
// @Param        page       query  int     false  "Página (default 1)"
// @Param        limit      query  int     false  "Tamaño de página (default 100)"
// @Success      200  {object}  dto.ProductSearchResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/returns/products [get]
func (h *ReturnHandler) ReturnedProducts(c *fiber.Ctx) error {
	q, err := listQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.search.ListReturnedProducts(c.UserContext(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

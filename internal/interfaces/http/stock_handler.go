package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
)

// StockHandler maneja confirmación de voz, vista de stock, despensa y movimientos (protegido).
type StockHandler struct {
	confirm *inventory.ConfirmVoiceUseCase
	view    *inventory.StockViewUseCase
	log     zerolog.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(confirm *inventory.ConfirmVoiceUseCase, view *inventory.StockViewUseCase, log zerolog.Logger) *StockHandler {
	return &StockHandler{confirm: confirm, view: view, log: log}
}

// ConfirmVoice godoc
// @Summary      Confirmar ítems dictados
// @Description  Persiste las selecciones revisadas como ítems de stock con un movimiento ENTRADA cada uno.
//
//	Todo el lote se aplica en una sola transacción: si una selección falla no se guarda nada.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  []dto.ConfirmSelectionRequest  true  "selecciones confirmadas"
// @Success      200   {object}  dto.ConfirmResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /stock/confirm-voice [post]
func (h *StockHandler) ConfirmVoice(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	var in []dto.ConfirmSelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	res, err := h.confirm.Confirm(c.UserContext(), userID, in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(res.Response())
}

// List godoc
// @Summary      Stock agrupado por ubicación
// @Description  Grupos ordenados (Armário, Geladeira, Freezer, otros, Sem local); dentro de cada grupo
//
//	primero lo más urgente. q filtra por nombre del producto.
//
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        q    query     string  false  "texto a buscar en el nombre"
// @Success      200  {object}  dto.StockListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /stock/list [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.view.List(c.UserContext(), userID, strings.TrimSpace(c.Query("q")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ListPDF godoc
// @Summary      Stock agrupado en PDF
// @Tags         stock
// @Security     Bearer
// @Produce      application/pdf
// @Param        q    query     string  false  "texto a buscar en el nombre"
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock/list.pdf [get]
func (h *StockHandler) ListPDF(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	pdf, err := h.view.ExportPDF(c.UserContext(), userID, strings.TrimSpace(c.Query("q")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="estoque.pdf"`)
	return c.Send(pdf)
}

// Movements godoc
// @Summary      Movimientos de un ítem
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path      string  true  "ID del ítem"
// @Success      200  {object}  dto.StockMovementListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /stock/items/{id}/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.view.Movements(c.UserContext(), userID, c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Pantry godoc
// @Summary      Despensa del usuario
// @Description  Todos los ítems con cantidad, unidad, vencimiento y estado (ok, alert, danger, expired).
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PantryResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /me/pantry [get]
func (h *StockHandler) Pantry(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return unauthorized(c)
	}
	out, err := h.view.Pantry(c.UserContext(), userID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

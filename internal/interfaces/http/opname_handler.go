package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stok-api/internal/application/dto"
	"github.com/jhoicas/stok-api/internal/application/inventory"
)

// OpnameHandler maneja las sesiones de stock opname (protegido).
type OpnameHandler struct {
	uc  *inventory.OpnameUseCase
	log zerolog.Logger
}

// NewOpnameHandler construye el handler.
func NewOpnameHandler(uc *inventory.OpnameUseCase, log zerolog.Logger) *OpnameHandler {
	return &OpnameHandler{uc: uc, log: log.With().Str("component", "http_opname").Logger()}
}

// Start godoc
// @Summary      Iniciar stock opname
// @Description  Crea la sesión ACTIVE con un snapshot de los saldos positivos (de una ubicación o de todas).
// @Tags         opname
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StartOpnameRequest  false  "location_id opcional, note"
// @Success      201   {object}  dto.OpnameSessionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/opname [post]
func (h *OpnameHandler) Start(c *fiber.Ctx) error {
	var in dto.StartOpnameRequest
	if len(c.Body()) > 0 {
		if err := bindJSON(c, &in); err != nil {
			return writeError(c, h.log, err)
		}
	}
	out, err := h.uc.Start(c.UserContext(), inventory.StartOpnameInput{
		LocationID: in.LocationID,
		Note:       in.Note,
		CreatedBy:  GetUserID(c),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar sesiones de opname
// @Tags         opname
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "ACTIVE | COMPLETED | CANCELLED"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.OpnameListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/opname [get]
func (h *OpnameHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c, 20, 100)
	out, err := h.uc.List(c.UserContext(), c.Query("status"), limit, offset)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener sesión de opname con líneas y resumen
// @Tags         opname
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Sesión"
// @Success      200  {object}  dto.OpnameSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/opname/{id} [get]
func (h *OpnameHandler) Get(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateCount godoc
// @Summary      Registrar conteo físico
// @Tags         opname
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                      true  "Sesión"
// @Param        body  body  dto.UpdateCountRequest  true  "variant_id, location_id, counted_qty"
// @Success      200   {object}  dto.OpnameItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/opname/{id}/counts [put]
func (h *OpnameHandler) UpdateCount(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.UpdateCountRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.UpdateCount(c.UserContext(), inventory.CountInput{
		SessionID:  id,
		VariantID:  in.VariantID,
		LocationID: in.LocationID,
		CountedQty: *in.CountedQty,
		CountedBy:  GetUserID(c),
		Note:       in.Note,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// AddItem godoc
// @Summary      Agregar línea no incluida en el snapshot
// @Tags         opname
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                       true  "Sesión"
// @Param        body  body  dto.AddOpnameItemRequest  true  "variant_id, location_id"
// @Success      201   {object}  dto.OpnameItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/opname/{id}/items [post]
func (h *OpnameHandler) AddItem(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	var in dto.AddOpnameItemRequest
	if err := bindJSON(c, &in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.AddItem(c.UserContext(), id, in.VariantID, in.LocationID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Commit godoc
// @Summary      Confirmar opname
// @Description  Registra un ajuste por cada línea contada con diferencia y cierra la sesión, en una transacción.
// @Tags         opname
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Sesión"
// @Success      200  {object}  dto.OpnameCommitResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/opname/{id}/commit [post]
func (h *OpnameHandler) Commit(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Commit(c.UserContext(), id, GetUserID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar opname
// @Tags         opname
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "Sesión"
// @Success      200  {object}  dto.OpnameSessionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/opname/{id}/cancel [post]
func (h *OpnameHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramInt64(c, "id")
	if err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.Cancel(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/invoice-api/internal/application/billing"
	"github.com/jhoicas/invoice-api/internal/application/dto"
	"github.com/jhoicas/invoice-api/internal/application/validation"
	"github.com/jhoicas/invoice-api/internal/domain"
)

// Mensajes del envelope de facturas.
const (
	msgListed         = "Invoices retrieved successfully"
	msgCreated        = "Invoice created successfully"
	msgRetrieved      = "Invoice retrieved successfully"
	msgUpdated        = "Invoice updated successfully"
	msgDeleted        = "Invoice deleted successfully"
	msgValidation     = "Validation failed"
	msgNotFound       = "Invoice not found"
	msgListFailed     = "Failed to retrieve invoices"
	msgCreateFailed   = "Failed to create invoice"
	msgRetrieveFailed = "Failed to retrieve invoice"
	msgUpdateFailed   = "Failed to update invoice"
	msgDeleteFailed   = "Failed to delete invoice"
)

// InvoiceHandler maneja las peticiones HTTP del recurso factura.
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
	log zerolog.Logger
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf, log: log}
}

// Index lista facturas paginadas con sus líneas.
// @Summary      Listar facturas
// @Tags         invoices
// @Produce      json
// @Param        page      query  int  false  "Página (1-based)"
// @Param        per_page  query  int  false  "Tamaño de página (default 15, máx. 100)"
// @Success      200  {object}  dto.Envelope{data=dto.InvoiceListResponse}
// @Failure      500  {object}  dto.Envelope
// @Router       /api/v1/invoices [get]
func (h *InvoiceHandler) Index(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return failure(c, fiber.StatusUnprocessableEntity, msgValidation, map[string][]string{
			"per_page": {"The page and per page fields must be integers."},
		})
	}
	out, err := h.uc.List(c.UserContext(), page)
	if err != nil {
		return h.internal(c, err, msgListFailed)
	}
	return success(c, fiber.StatusOK, msgListed, out)
}

// Store crea una factura con sus líneas.
// @Summary      Crear factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InvoicePayload  true  "Cabecera + items"
// @Success      201  {object}  dto.Envelope{data=dto.InvoiceResponse}
// @Failure      422  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /api/v1/invoices [post]
func (h *InvoiceHandler) Store(c *fiber.Ctx) error {
	var in dto.InvoicePayload
	if err := c.BodyParser(&in); err != nil {
		return failure(c, fiber.StatusUnprocessableEntity, msgValidation, validation.FromDecodeError(err))
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return h.writeError(c, err, msgCreateFailed)
	}
	return success(c, fiber.StatusCreated, msgCreated, out)
}

// Show obtiene una factura con sus líneas.
// @Summary      Obtener factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.Envelope{data=dto.InvoiceResponse}
// @Failure      404  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) Show(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, msgRetrieveFailed)
	}
	return success(c, fiber.StatusOK, msgRetrieved, out)
}

// Update modifica la cabecera y, si llegan items, reemplaza todas las líneas.
// @Summary      Actualizar factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID de la factura"
// @Param        body  body  dto.InvoicePayload  true  "Campos a modificar"
// @Success      200  {object}  dto.Envelope{data=dto.InvoiceResponse}
// @Failure      404  {object}  dto.Envelope
// @Failure      422  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /api/v1/invoices/{id} [put]
func (h *InvoiceHandler) Update(c *fiber.Ctx) error {
	var in dto.InvoicePayload
	if err := c.BodyParser(&in); err != nil {
		return failure(c, fiber.StatusUnprocessableEntity, msgValidation, validation.FromDecodeError(err))
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.writeError(c, err, msgUpdateFailed)
	}
	return success(c, fiber.StatusOK, msgUpdated, out)
}

// Destroy elimina la factura y sus líneas.
// @Summary      Eliminar factura
// @Tags         invoices
// @Produce      json
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /api/v1/invoices/{id} [delete]
func (h *InvoiceHandler) Destroy(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.writeError(c, err, msgDeleteFailed)
	}
	return success(c, fiber.StatusOK, msgDeleted, nil)
}

// PDF descarga la representación imprimible de la factura.
// @Summary      Descargar PDF de la factura
// @Tags         invoices
// @Produce      application/pdf
// @Param        id   path  string  true  "ID de la factura"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.Envelope
// @Failure      500  {object}  dto.Envelope
// @Router       /api/v1/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err, msgRetrieveFailed)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Status(fiber.StatusOK).Send(pdfBytes)
}

// writeError mapea errores de dominio y validación a su código HTTP.
func (h *InvoiceHandler) writeError(c *fiber.Ctx, err error, fallback string) error {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return failure(c, fiber.StatusUnprocessableEntity, msgValidation, verrs)
	case errors.Is(err, domain.ErrNotFound):
		return failure(c, fiber.StatusNotFound, msgNotFound, nil)
	case errors.Is(err, domain.ErrEmptyItems):
		return failure(c, fiber.StatusUnprocessableEntity, msgValidation, map[string][]string{
			"items": {"The items field must have at least 1 items."},
		})
	default:
		return h.internal(c, err, fallback)
	}
}

func (h *InvoiceHandler) internal(c *fiber.Ctx, err error, message string) error {
	h.log.Error().
		Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Str("user_id", GetUserID(c)).
		Msg("error inesperado en facturas")
	return failure(c, fiber.StatusInternalServerError, message, nil)
}

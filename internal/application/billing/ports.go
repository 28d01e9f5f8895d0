package billing

import (
	"context"

	"github.com/jhoicas/invoice-api/internal/application/dto"
	"github.com/jhoicas/invoice-api/internal/domain/entity"
	"github.com/jhoicas/invoice-api/internal/domain/repository"
)

// BillingTxRunner ejecuta callbacks con el repositorio de facturas atado a una transacción.
type BillingTxRunner interface {
	// RunBilling abre una transacción de escritura: commit si fn devuelve nil, rollback en cualquier otro caso.
	RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
	// ReadBilling abre una transacción de solo lectura para hidratar cabecera y líneas
	// desde un mismo snapshot.
	ReadBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error
}

// InvoiceValidator aplica las reglas de creación/actualización antes de tocar el agregado.
type InvoiceValidator interface {
	ValidateCreate(p dto.InvoicePayload) error
	ValidateUpdate(p dto.InvoicePayload) error
}

// InvoicePDFGenerator genera la representación gráfica de una factura hidratada.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice) ([]byte, error)
}

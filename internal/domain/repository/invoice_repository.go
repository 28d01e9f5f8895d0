package repository

import (
	"context"

	"github.com/jhoicas/invoice-api/internal/domain/entity"
)

// InvoiceRepository define el puerto de persistencia para Invoice y sus líneas.
// Las implementaciones trabajan igual sobre el pool o dentro de una transacción.
type InvoiceRepository interface {
	// Create persiste solo la cabecera.
	Create(ctx context.Context, invoice *entity.Invoice) error
	CreateItem(ctx context.Context, item *entity.InvoiceItem) error
	// Update persiste campos de cabecera y totales derivados.
	Update(ctx context.Context, invoice *entity.Invoice) error
	DeleteItems(ctx context.Context, invoiceID string) error
	// Delete elimina la factura; las líneas caen en cascada.
	Delete(ctx context.Context, id string) error
	// GetByID devuelve (nil, nil) si no existe. No carga líneas.
	GetByID(ctx context.Context, id string) (*entity.Invoice, error)
	GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error)
	// GetItemsByInvoiceIDs carga las líneas de varias facturas en una sola consulta.
	GetItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]*entity.InvoiceItem, error)
	// List devuelve cabeceras ordenadas por created_at descendente.
	List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error)
	Count(ctx context.Context) (int, error)
}

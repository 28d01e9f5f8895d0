package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/invoice-api/internal/domain"
	"github.com/jhoicas/invoice-api/internal/domain/entity"
	"github.com/jhoicas/invoice-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, client_name, client_email, client_address, invoice_date, due_date,
       tax_rate, status, notes, subtotal, tax_amount, total_amount, created_at, updated_at`

const itemColumns = `id, invoice_id, position, description, quantity, unit_price, line_total, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create persiste la cabecera de la factura.
func (r *InvoiceRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoices (id, client_name, client_email, client_address, invoice_date, due_date,
		                      tax_rate, status, notes, subtotal, tax_amount, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.ClientName, invoice.ClientEmail, invoice.ClientAddress,
		invoice.InvoiceDate, invoice.DueDate, invoice.TaxRate, string(invoice.Status), invoice.Notes,
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("insert invoice: %w: %v", domain.ErrInvalidInput, err)
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de detalle.
func (r *InvoiceRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	query := `
		INSERT INTO invoice_items (id, invoice_id, position, description, quantity, unit_price, line_total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.InvoiceID, item.Position, item.Description, item.Quantity,
		item.UnitPrice, item.LineTotal, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("insert invoice item: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert invoice item: %w", err)
	}
	return nil
}

// Update actualiza cabecera y totales derivados.
func (r *InvoiceRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET client_name    = $2,
		    client_email   = $3,
		    client_address = $4,
		    invoice_date   = $5,
		    due_date       = $6,
		    tax_rate       = $7,
		    status         = $8,
		    notes          = $9,
		    subtotal       = $10,
		    tax_amount     = $11,
		    total_amount   = $12,
		    updated_at     = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		invoice.ID, invoice.ClientName, invoice.ClientEmail, invoice.ClientAddress,
		invoice.InvoiceDate, invoice.DueDate, invoice.TaxRate, string(invoice.Status), invoice.Notes,
		invoice.Subtotal, invoice.TaxAmount, invoice.TotalAmount, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteItems elimina todas las líneas de la factura.
func (r *InvoiceRepo) DeleteItems(ctx context.Context, invoiceID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoiceID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	return nil
}

// Delete elimina la factura; ON DELETE CASCADE borra sus líneas en la misma sentencia.
func (r *InvoiceRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete invoice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera de una factura por ID.
func (r *InvoiceRepo) GetByID(ctx context.Context, id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	inv, err := scanInvoice(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice: %w", err)
	}
	return inv, nil
}

// GetItemsByInvoiceID obtiene las líneas de una factura en su orden original.
func (r *InvoiceRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	query := `SELECT ` + itemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.InvoiceItem, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, item)
	}
	return list, rows.Err()
}

// GetItemsByInvoiceIDs carga en una sola consulta las líneas de varias facturas.
func (r *InvoiceRepo) GetItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (map[string][]*entity.InvoiceItem, error) {
	out := make(map[string][]*entity.InvoiceItem, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return out, nil
	}
	query := `SELECT ` + itemColumns + ` FROM invoice_items
		WHERE invoice_id = ANY($1::uuid[]) ORDER BY invoice_id, position`
	rows, err := r.q.Query(ctx, query, invoiceIDs)
	if err != nil {
		return nil, fmt.Errorf("list invoice items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		out[item.InvoiceID] = append(out[item.InvoiceID], item)
	}
	return out, rows.Err()
}

// List lista cabeceras, más recientes primero.
func (r *InvoiceRepo) List(ctx context.Context, limit, offset int) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices
		ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Invoice, 0, limit)
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// Count total de facturas.
func (r *InvoiceRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM invoices`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count invoices: %w", err)
	}
	return n, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var status string
	err := row.Scan(
		&inv.ID, &inv.ClientName, &inv.ClientEmail, &inv.ClientAddress,
		&inv.InvoiceDate, &inv.DueDate, &inv.TaxRate, &status, &inv.Notes,
		&inv.Subtotal, &inv.TaxAmount, &inv.TotalAmount,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	inv.Status = entity.Status(status)
	return &inv, nil
}

func scanItem(row pgx.Row) (*entity.InvoiceItem, error) {
	var it entity.InvoiceItem
	err := row.Scan(
		&it.ID, &it.InvoiceID, &it.Position, &it.Description, &it.Quantity,
		&it.UnitPrice, &it.LineTotal, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

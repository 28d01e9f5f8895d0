package memory

import (
	"context"
	"errors"

	"github.com/jhoicas/invoice-api/internal/domain/entity"
	"github.com/jhoicas/invoice-api/internal/domain/repository"
)

var errReadOnly = errors.New("memory: transacción de solo lectura")

// autoRepo cada escritura es su propia transacción; las lecturas ven el estado confirmado.
type autoRepo struct {
	s *Store
}

func (a *autoRepo) read(fn func(r *repo) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(&repo{store: a.s, st: a.s.state})
}

func (a *autoRepo) Create(ctx context.Context, invoice *entity.Invoice) error {
	return a.s.RunBilling(ctx, func(r repository.InvoiceRepository) error { return r.Create(ctx, invoice) })
}

func (a *autoRepo) CreateItem(ctx context.Context, item *entity.InvoiceItem) error {
	return a.s.RunBilling(ctx, func(r repository.InvoiceRepository) error { return r.CreateItem(ctx, item) })
}

func (a *autoRepo) Update(ctx context.Context, invoice *entity.Invoice) error {
	return a.s.RunBilling(ctx, func(r repository.InvoiceRepository) error { return r.Update(ctx, invoice) })
}

func (a *autoRepo) DeleteItems(ctx context.Context, invoiceID string) error {
	return a.s.RunBilling(ctx, func(r repository.InvoiceRepository) error { return r.DeleteItems(ctx, invoiceID) })
}

func (a *autoRepo) Delete(ctx context.Context, id string) error {
	return a.s.RunBilling(ctx, func(r repository.InvoiceRepository) error { return r.Delete(ctx, id) })
}

func (a *autoRepo) GetByID(ctx context.Context, id string) (inv *entity.Invoice, err error) {
	err = a.read(func(r *repo) error {
		inv, err = r.GetByID(ctx, id)
		return err
	})
	return inv, err
}

func (a *autoRepo) GetItemsByInvoiceID(ctx context.Context, invoiceID string) (items []*entity.InvoiceItem, err error) {
	err = a.read(func(r *repo) error {
		items, err = r.GetItemsByInvoiceID(ctx, invoiceID)
		return err
	})
	return items, err
}

func (a *autoRepo) GetItemsByInvoiceIDs(ctx context.Context, invoiceIDs []string) (out map[string][]*entity.InvoiceItem, err error) {
	err = a.read(func(r *repo) error {
		out, err = r.GetItemsByInvoiceIDs(ctx, invoiceIDs)
		return err
	})
	return out, err
}

func (a *autoRepo) List(ctx context.Context, limit, offset int) (list []*entity.Invoice, err error) {
	err = a.read(func(r *repo) error {
		list, err = r.List(ctx, limit, offset)
		return err
	})
	return list, err
}

func (a *autoRepo) Count(ctx context.Context) (n int, err error) {
	err = a.read(func(r *repo) error {
		n, err = r.Count(ctx)
		return err
	})
	return n, err
}

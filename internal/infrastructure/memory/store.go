// Package memory implementa el repositorio de facturas en memoria con transacciones
// por snapshot: cada RunBilling trabaja sobre una copia y solo la publica al confirmar.
// Se usa en pruebas y permite inyectar fallos por operación.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jhoicas/invoice-api/internal/application/billing"
	"github.com/jhoicas/invoice-api/internal/domain"
	"github.com/jhoicas/invoice-api/internal/domain/entity"
	"github.com/jhoicas/invoice-api/internal/domain/repository"
)

var (
	_ billing.BillingTxRunner       = (*Store)(nil)
	_ repository.InvoiceRepository = (*repo)(nil)
	_ repository.InvoiceRepository = (*autoRepo)(nil)
)

// Operaciones que admiten inyección de fallos.
const (
	OpCreate        = "Create"
	OpCreateItem    = "CreateItem"
	OpUpdate        = "Update"
	OpDeleteItems   = "DeleteItems"
	OpDelete        = "Delete"
	OpGetByID       = "GetByID"
	OpGetItems      = "GetItemsByInvoiceID"
	OpGetItemsBatch = "GetItemsByInvoiceIDs"
	OpList          = "List"
	OpCount         = "Count"
)

type state struct {
	invoices map[string]*entity.Invoice
	items    map[string][]*entity.InvoiceItem
	seq      map[string]int64
	nextSeq  int64
}

func newState() *state {
	return &state{
		invoices: make(map[string]*entity.Invoice),
		items:    make(map[string][]*entity.InvoiceItem),
		seq:      make(map[string]int64),
	}
}

func (s *state) clone() *state {
	out := newState()
	out.nextSeq = s.nextSeq
	for id, inv := range s.invoices {
		out.invoices[id] = copyInvoice(inv)
		out.seq[id] = s.seq[id]
	}
	for id, items := range s.items {
		out.items[id] = copyItems(items)
	}
	return out
}

// Store estado confirmado más el lock que serializa las transacciones de escritura.
type Store struct {
	mu      sync.RWMutex
	writeMu sync.Mutex
	state   *state

	faultMu sync.Mutex
	faults  map[string]error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{state: newState(), faults: make(map[string]error)}
}

// InjectFault hace que la próxima llamada a op devuelva err (una sola vez).
func (s *Store) InjectFault(op string, err error) {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	s.faults[op] = err
}

func (s *Store) fault(op string) error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	err, ok := s.faults[op]
	if !ok {
		return nil
	}
	delete(s.faults, op)
	return err
}

// RunBilling ejecuta fn sobre una copia del estado; si fn termina sin error la copia
// reemplaza al estado confirmado, si no se descarta completa.
func (s *Store) RunBilling(ctx context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	if err := fn(&repo{store: s, st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
	return nil
}

// ReadBilling ejecuta fn contra el estado confirmado, sin escrituras concurrentes visibles.
func (s *Store) ReadBilling(_ context.Context, fn func(invoiceRepo repository.InvoiceRepository) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&readOnlyRepo{repo{store: s, st: s.state}})
}

// Repository devuelve un repositorio en modo autocommit sobre el estado confirmado.
func (s *Store) Repository() repository.InvoiceRepository {
	return &autoRepo{s: s}
}

// ── repo transaccional ────────────────────────────────────────────────────────

type repo struct {
	store *Store
	st    *state
}

func (r *repo) Create(_ context.Context, invoice *entity.Invoice) error {
	if err := r.store.fault(OpCreate); err != nil {
		return err
	}
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if _, exists := r.st.invoices[invoice.ID]; exists {
		return domain.ErrConflict
	}
	if err := checkInvoice(invoice); err != nil {
		return err
	}
	r.st.nextSeq++
	r.st.invoices[invoice.ID] = copyInvoice(invoice)
	r.st.seq[invoice.ID] = r.st.nextSeq
	return nil
}

func (r *repo) CreateItem(_ context.Context, item *entity.InvoiceItem) error {
	if err := r.store.fault(OpCreateItem); err != nil {
		return err
	}
	if _, ok := r.st.invoices[item.InvoiceID]; !ok {
		return domain.ErrNotFound
	}
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	cp := *item
	r.st.items[item.InvoiceID] = append(r.st.items[item.InvoiceID], &cp)
	return nil
}

func (r *repo) Update(_ context.Context, invoice *entity.Invoice) error {
	if err := r.store.fault(OpUpdate); err != nil {
		return err
	}
	if _, ok := r.st.invoices[invoice.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := checkInvoice(invoice); err != nil {
		return err
	}
	r.st.invoices[invoice.ID] = copyInvoice(invoice)
	return nil
}

func (r *repo) DeleteItems(_ context.Context, invoiceID string) error {
	if err := r.store.fault(OpDeleteItems); err != nil {
		return err
	}
	delete(r.st.items, invoiceID)
	return nil
}

func (r *repo) Delete(_ context.Context, id string) error {
	if err := r.store.fault(OpDelete); err != nil {
		return err
	}
	if _, ok := r.st.invoices[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.st.invoices, id)
	delete(r.st.items, id)
	delete(r.st.seq, id)
	return nil
}

func (r *repo) GetByID(_ context.Context, id string) (*entity.Invoice, error) {
	if err := r.store.fault(OpGetByID); err != nil {
		return nil, err
	}
	inv, ok := r.st.invoices[id]
	if !ok {
		return nil, nil
	}
	return copyInvoice(inv), nil
}

func (r *repo) GetItemsByInvoiceID(_ context.Context, invoiceID string) ([]*entity.InvoiceItem, error) {
	if err := r.store.fault(OpGetItems); err != nil {
		return nil, err
	}
	return copyItems(r.st.items[invoiceID]), nil
}

func (r *repo) GetItemsByInvoiceIDs(_ context.Context, invoiceIDs []string) (map[string][]*entity.InvoiceItem, error) {
	if err := r.store.fault(OpGetItemsBatch); err != nil {
		return nil, err
	}
	out := make(map[string][]*entity.InvoiceItem, len(invoiceIDs))
	for _, id := range invoiceIDs {
		if items, ok := r.st.items[id]; ok {
			out[id] = copyItems(items)
		}
	}
	return out, nil
}

func (r *repo) List(_ context.Context, limit, offset int) ([]*entity.Invoice, error) {
	if err := r.store.fault(OpList); err != nil {
		return nil, err
	}
	all := make([]*entity.Invoice, 0, len(r.st.invoices))
	for _, inv := range r.st.invoices {
		all = append(all, inv)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return r.st.seq[all[i].ID] > r.st.seq[all[j].ID]
	})
	if offset >= len(all) {
		return []*entity.Invoice{}, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	out := make([]*entity.Invoice, 0, end-offset)
	for _, inv := range all[offset:end] {
		out = append(out, copyInvoice(inv))
	}
	return out, nil
}

func (r *repo) Count(_ context.Context) (int, error) {
	if err := r.store.fault(OpCount); err != nil {
		return 0, err
	}
	return len(r.st.invoices), nil
}

// readOnlyRepo rechaza escrituras dentro de ReadBilling.
type readOnlyRepo struct{ repo }

func (r *readOnlyRepo) Create(context.Context, *entity.Invoice) error { return errReadOnly }
func (r *readOnlyRepo) CreateItem(context.Context, *entity.InvoiceItem) error { return errReadOnly }
func (r *readOnlyRepo) Update(context.Context, *entity.Invoice) error { return errReadOnly }
func (r *readOnlyRepo) DeleteItems(context.Context, string) error { return errReadOnly }
func (r *readOnlyRepo) Delete(context.Context, string) error { return errReadOnly }

// checkInvoice replica los CHECK de la tabla invoices.
func checkInvoice(inv *entity.Invoice) error {
	if !inv.Status.Valid() {
		return fmt.Errorf("%w: status %q", domain.ErrInvalidInput, inv.Status)
	}
	if !inv.DueDateValid() {
		return fmt.Errorf("%w: due_date anterior a invoice_date", domain.ErrInvalidInput)
	}
	return nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

func copyInvoice(in *entity.Invoice) *entity.Invoice {
	out := *in
	out.Items = nil
	if in.Notes != nil {
		notes := *in.Notes
		out.Notes = &notes
	}
	return &out
}

func copyItems(in []*entity.InvoiceItem) []*entity.InvoiceItem {
	out := make([]*entity.InvoiceItem, 0, len(in))
	for _, it := range in {
		cp := *it
		out = append(out, &cp)
	}
	return out
}

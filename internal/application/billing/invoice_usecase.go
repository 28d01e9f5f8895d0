package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/invoice-api/internal/application/dto"
	"github.com/jhoicas/invoice-api/internal/application/validation"
	"github.com/jhoicas/invoice-api/internal/domain"
	"github.com/jhoicas/invoice-api/internal/domain/entity"
	"github.com/jhoicas/invoice-api/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// ListConfig límites de paginación del listado.
type ListConfig struct {
	DefaultPerPage int
	MaxPerPage     int
}

// InvoiceUseCase casos de uso CRUD del agregado factura + líneas.
// Toda escritura multi-fila corre en una sola transacción y la respuesta se
// construye siempre desde el estado ya confirmado.
type InvoiceUseCase struct {
	txRunner    BillingTxRunner
	invoiceRepo repository.InvoiceRepository
	validator   InvoiceValidator
	listCfg     ListConfig
	log         zerolog.Logger
	now         func() time.Time
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	txRunner BillingTxRunner,
	invoiceRepo repository.InvoiceRepository,
	validator InvoiceValidator,
	listCfg ListConfig,
	log zerolog.Logger,
) *InvoiceUseCase {
	if listCfg.DefaultPerPage <= 0 {
		listCfg.DefaultPerPage = 15
	}
	return &InvoiceUseCase{
		txRunner:    txRunner,
		invoiceRepo: invoiceRepo,
		validator:   validator,
		listCfg:     listCfg,
		log:         log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// List devuelve una página de facturas (más recientes primero) con sus líneas.
func (uc *InvoiceUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.Normalize(uc.listCfg.DefaultPerPage, uc.listCfg.MaxPerPage)

	var (
		invoices []*entity.Invoice
		total    int
	)
	err := uc.txRunner.ReadBilling(ctx, func(repo repository.InvoiceRepository) error {
		var err error
		if total, err = repo.Count(ctx); err != nil {
			return err
		}
		if invoices, err = repo.List(ctx, page.PerPage, page.Offset()); err != nil {
			return err
		}
		ids := make([]string, 0, len(invoices))
		for _, inv := range invoices {
			ids = append(ids, inv.ID)
		}
		itemsByInvoice, err := repo.GetItemsByInvoiceIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, inv := range invoices {
			inv.Items = itemsByInvoice[inv.ID]
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}

	out := &dto.InvoiceListResponse{
		PageResponse: dto.NewPageResponse(page, total, len(invoices)),
		Data:         make([]dto.InvoiceResponse, 0, len(invoices)),
	}
	for _, inv := range invoices {
		out.Data = append(out.Data, *toInvoiceResponse(inv))
	}
	return out, nil
}

// Get obtiene una factura hidratada. domain.ErrNotFound si no existe.
func (uc *InvoiceUseCase) Get(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	inv, err := uc.hydrated(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// Create valida, persiste cabecera y líneas, recalcula totales y confirma en una sola transacción.
func (uc *InvoiceUseCase) Create(ctx context.Context, in dto.InvoicePayload) (*dto.InvoiceResponse, error) {
	in = in.Normalized()
	if err := uc.validator.ValidateCreate(in); err != nil {
		return nil, err
	}
	inv, err := invoiceFromPayload(in)
	if err != nil {
		return nil, err
	}
	items := itemsFromPayload(in.Items)
	if len(items) == 0 {
		return nil, domain.ErrEmptyItems
	}

	now := uc.now()
	inv.ID = uuid.New().String()
	inv.CreatedAt, inv.UpdatedAt = now, now

	err = uc.txRunner.RunBilling(ctx, func(repo repository.InvoiceRepository) error {
		// 1) Cabecera con totales en cero
		if err := repo.Create(ctx, inv); err != nil {
			return err
		}
		// 2) Líneas enlazadas a la cabecera
		if err := uc.insertItems(ctx, repo, inv, items, now); err != nil {
			return err
		}
		// 3) Totales derivados y persistencia final de la cabecera
		inv.CalculateTotals()
		if !inv.WithinLimits() {
			return totalTooLarge()
		}
		return repo.Update(ctx, inv)
	})
	if err != nil {
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, fmt.Errorf("crear factura: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", inv.ID).
		Int("items", len(items)).
		Str("total_amount", inv.TotalAmount.StringFixed(entity.CurrencyPrecision)).
		Msg("factura creada")
	return uc.Get(ctx, inv.ID)
}

// Update aplica un cambio parcial de cabecera y, si el payload trae items,
// reemplaza todas las líneas. Los totales se recalculan siempre antes del commit.
func (uc *InvoiceUseCase) Update(ctx context.Context, id string, in dto.InvoicePayload) (*dto.InvoiceResponse, error) {
	in = in.Normalized()
	if err := uc.validator.ValidateUpdate(in); err != nil {
		return nil, err
	}
	existing, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	patch, err := patchFromPayload(in)
	if err != nil {
		return nil, err
	}
	if err := checkDueDate(existing, patch); err != nil {
		return nil, err
	}

	replaceItems := in.HasItems()
	var items []*entity.InvoiceItem
	if replaceItems {
		items = itemsFromPayload(in.Items)
		if len(items) == 0 {
			return nil, domain.ErrEmptyItems
		}
	}

	now := uc.now()
	err = uc.txRunner.RunBilling(ctx, func(repo repository.InvoiceRepository) error {
		inv, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		if err := checkDueDate(inv, patch); err != nil {
			return err
		}
		inv.Apply(patch)

		if replaceItems {
			if err := repo.DeleteItems(ctx, inv.ID); err != nil {
				return err
			}
			if err := uc.insertItems(ctx, repo, inv, items, now); err != nil {
				return err
			}
		} else {
			current, err := repo.GetItemsByInvoiceID(ctx, inv.ID)
			if err != nil {
				return err
			}
			inv.Items = current
		}
		if len(inv.Items) == 0 {
			return domain.ErrEmptyItems
		}

		inv.CalculateTotals()
		if !inv.WithinLimits() {
			return totalTooLarge()
		}
		inv.UpdatedAt = now
		return repo.Update(ctx, inv)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		var verrs validation.Errors
		if errors.As(err, &verrs) {
			return nil, verrs
		}
		return nil, fmt.Errorf("actualizar factura: %w", err)
	}

	uc.log.Info().
		Str("invoice_id", id).
		Bool("items_replaced", replaceItems).
		Msg("factura actualizada")
	return uc.Get(ctx, id)
}

// Delete elimina la factura y, en cascada, sus líneas.
func (uc *InvoiceUseCase) Delete(ctx context.Context, id string) error {
	existing, err := uc.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("obtener factura: %w", err)
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	err = uc.txRunner.RunBilling(ctx, func(repo repository.InvoiceRepository) error {
		return repo.Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("eliminar factura: %w", err)
	}
	uc.log.Info().Str("invoice_id", id).Msg("factura eliminada")
	return nil
}

// hydrated carga cabecera y líneas desde un mismo snapshot.
func (uc *InvoiceUseCase) hydrated(ctx context.Context, id string) (*entity.Invoice, error) {
	return loadHydrated(ctx, uc.txRunner, id)
}

func loadHydrated(ctx context.Context, txRunner BillingTxRunner, id string) (*entity.Invoice, error) {
	var inv *entity.Invoice
	err := txRunner.ReadBilling(ctx, func(repo repository.InvoiceRepository) error {
		var err error
		inv, err = repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if inv == nil {
			return domain.ErrNotFound
		}
		inv.Items, err = repo.GetItemsByInvoiceID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	return inv, nil
}

func (uc *InvoiceUseCase) insertItems(ctx context.Context, repo repository.InvoiceRepository, inv *entity.Invoice, items []*entity.InvoiceItem, now time.Time) error {
	inv.SetItems(items)
	for _, item := range inv.Items {
		item.ID = uuid.New().String()
		item.CreatedAt, item.UpdatedAt = now, now
		if err := repo.CreateItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// checkDueDate resuelve due_date e invoice_date contra los valores guardados
// cuando el patch trae solo uno de los dos.
func checkDueDate(current *entity.Invoice, p entity.InvoicePatch) error {
	if p.InvoiceDate == nil && p.DueDate == nil {
		return nil
	}
	start, due := current.InvoiceDate, current.DueDate
	if p.InvoiceDate != nil {
		start = *p.InvoiceDate
	}
	if p.DueDate != nil {
		due = *p.DueDate
	}
	if due.Before(start) {
		errs := validation.Errors{}
		errs.Add("due_date", validation.AfterOrEqualMessage("due_date", "invoice_date"))
		return errs
	}
	return nil
}

func totalTooLarge() error {
	errs := validation.Errors{}
	errs.Add("items", fmt.Sprintf("The invoice total must not be greater than %s.", entity.MaxAmount.StringFixed(entity.CurrencyPrecision)))
	return errs
}

func invoiceFromPayload(in dto.InvoicePayload) (*entity.Invoice, error) {
	patch, err := patchFromPayload(in)
	if err != nil {
		return nil, err
	}
	inv := &entity.Invoice{
		Status:      entity.StatusDraft,
		TaxRate:     decimal.Zero,
		Subtotal:    decimal.Zero,
		TaxAmount:   decimal.Zero,
		TotalAmount: decimal.Zero,
	}
	inv.Apply(patch)
	if !inv.DueDateValid() {
		errs := validation.Errors{}
		errs.Add("due_date", validation.AfterOrEqualMessage("due_date", "invoice_date"))
		return nil, errs
	}
	return inv, nil
}

func patchFromPayload(in dto.InvoicePayload) (entity.InvoicePatch, error) {
	p := entity.InvoicePatch{
		ClientName:    in.ClientName,
		ClientEmail:   in.ClientEmail,
		ClientAddress: in.ClientAddress,
		Notes:         in.Notes,
		ClearNotes:    in.IsNull(dto.FieldNotes),
	}
	switch {
	case in.TaxRate != nil:
		rate := in.TaxRate.Value.Round(entity.CurrencyPrecision)
		p.TaxRate = &rate
	case in.IsNull(dto.FieldTaxRate):
		zero := decimal.Zero
		p.TaxRate = &zero
	}
	if in.Status != nil {
		st := entity.Status(*in.Status)
		p.Status = &st
	}
	errs := validation.Errors{}
	if in.InvoiceDate != nil {
		d, err := validation.ParseDate(*in.InvoiceDate)
		if err != nil {
			errs.Add("invoice_date", "The invoice date field must be a valid date.")
		} else {
			p.InvoiceDate = &d
		}
	}
	if in.DueDate != nil {
		d, err := validation.ParseDate(*in.DueDate)
		if err != nil {
			errs.Add("due_date", "The due date field must be a valid date.")
		} else {
			p.DueDate = &d
		}
	}
	if len(errs) > 0 {
		return p, errs
	}
	return p, nil
}

func itemsFromPayload(in []dto.ItemPayload) []*entity.InvoiceItem {
	items := make([]*entity.InvoiceItem, 0, len(in))
	for _, it := range in {
		var (
			description string
			quantity    int64
			unitPrice   = decimal.Zero
		)
		if it.Description != nil {
			description = *it.Description
		}
		if it.Quantity != nil {
			quantity = *it.Quantity
		}
		if it.UnitPrice != nil {
			unitPrice = it.UnitPrice.Value
		}
		items = append(items, entity.NewInvoiceItem(description, quantity, unitPrice))
	}
	return items
}

func money(d decimal.Decimal) string {
	return d.StringFixed(entity.CurrencyPrecision)
}

func toInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:            inv.ID,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		ClientAddress: inv.ClientAddress,
		InvoiceDate:   inv.InvoiceDate.Format(dateLayout),
		DueDate:       inv.DueDate.Format(dateLayout),
		TaxRate:       money(inv.TaxRate),
		Status:        string(inv.Status),
		Notes:         inv.Notes,
		Subtotal:      money(inv.Subtotal),
		TaxAmount:     money(inv.TaxAmount),
		TotalAmount:   money(inv.TotalAmount),
		CreatedAt:     inv.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     inv.UpdatedAt.UTC().Format(time.RFC3339),
		Items:         make([]dto.InvoiceItemResponse, 0, len(inv.Items)),
	}
	for _, it := range inv.Items {
		resp.Items = append(resp.Items, dto.InvoiceItemResponse{
			ID:          it.ID,
			InvoiceID:   it.InvoiceID,
			Description: it.Description,
			Quantity:    it.Quantity,
			UnitPrice:   money(it.UnitPrice),
			LineTotal:   money(it.LineTotal),
		})
	}
	return resp
}

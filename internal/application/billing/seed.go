package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/invoice-api/internal/application/dto"
)

// DemoInvoices facturas de ejemplo relativas a today.
func DemoInvoices(today time.Time) []dto.InvoicePayload {
	day := func(offset int) *string {
		s := today.AddDate(0, 0, offset).Format(dateLayout)
		return &s
	}
	s := func(v string) *string { return &v }
	n := func(v int64) *int64 { return &v }
	d := dto.NewDecimal

	return []dto.InvoicePayload{
		{
			ClientName:    s("John Doe"),
			ClientEmail:   s("john@example.com"),
			ClientAddress: s("123 Main St, City, State 12345"),
			InvoiceDate:   day(0),
			DueDate:       day(30),
			TaxRate:       d("10.00"),
			Status:        s("draft"),
			Notes:         s("Thank you for your business!"),
			Items: []dto.ItemPayload{
				{Description: s("Web Development Service"), Quantity: n(10), UnitPrice: d("100.00")},
				{Description: s("Hosting Setup"), Quantity: n(1), UnitPrice: d("50.00")},
			},
		},
		{
			ClientName:    s("Jane Smith"),
			ClientEmail:   s("jane@example.com"),
			ClientAddress: s("456 Oak Ave, Town, State 67890"),
			InvoiceDate:   day(-5),
			DueDate:       day(25),
			TaxRate:       d("8.50"),
			Status:        s("sent"),
			Items: []dto.ItemPayload{
				{Description: s("Logo Design"), Quantity: n(1), UnitPrice: d("300.00")},
				{Description: s("Business Card Design"), Quantity: n(1), UnitPrice: d("150.00")},
			},
		},
	}
}

// SeedDemo crea las facturas de ejemplo a través del flujo normal de creación.
func (uc *InvoiceUseCase) SeedDemo(ctx context.Context) ([]*dto.InvoiceResponse, error) {
	payloads := DemoInvoices(uc.now())
	out := make([]*dto.InvoiceResponse, 0, len(payloads))
	for i, p := range payloads {
		inv, err := uc.Create(ctx, p)
		if err != nil {
			return out, fmt.Errorf("sembrar factura %d: %w", i+1, err)
		}
		out = append(out, inv)
	}
	return out, nil
}

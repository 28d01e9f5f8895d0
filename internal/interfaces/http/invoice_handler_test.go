package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/invoice-api/internal/application/billing"
	"github.com/jhoicas/invoice-api/internal/application/validation"
	"github.com/jhoicas/invoice-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/invoice-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/invoice-api/internal/interfaces/http"
	"github.com/jhoicas/invoice-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type envelope struct {
	Success bool                `json:"success"`
	Message string              `json:"message"`
	Data    json.RawMessage     `json:"data"`
	Errors  map[string][]string `json:"errors"`
}

type itemBody struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

type invoiceBody struct {
	ID          string     `json:"id"`
	ClientName  string     `json:"client_name"`
	Status      string     `json:"status"`
	TaxRate     string     `json:"tax_rate"`
	Subtotal    string     `json:"subtotal"`
	TaxAmount   string     `json:"tax_amount"`
	TotalAmount string     `json:"total_amount"`
	InvoiceDate string     `json:"invoice_date"`
	DueDate     string     `json:"due_date"`
	Notes       *string    `json:"notes"`
	Items       []itemBody `json:"items"`
}

type pageBody struct {
	CurrentPage int           `json:"current_page"`
	PerPage     int           `json:"per_page"`
	Total       int           `json:"total"`
	LastPage    int           `json:"last_page"`
	From        *int          `json:"from"`
	To          *int          `json:"to"`
	Data        []invoiceBody `json:"data"`
}

// buildInvoiceApp arma la aplicación completa sobre el store en memoria.
func buildInvoiceApp(t *testing.T, requireAuth bool) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := zerolog.Nop()

	invoiceUC := billing.NewInvoiceUseCase(store, store.Repository(), validation.NewInvoiceValidator(),
		billing.ListConfig{DefaultPerPage: 15, MaxPerPage: 100}, log)
	pdfUC := billing.NewPDFUseCase(store, infrapdf.NewMarotoPDFGenerator())

	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		Invoices:            apphttp.NewInvoiceHandler(invoiceUC, pdfUC, log),
		JWTSecret:           testJWTSecret,
		InvoicesRequireAuth: requireAuth,
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, envelope) {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	env := decodeEnvelope(t, resp)
	return resp, env
}

func decodeEnvelope(t *testing.T, resp *http.Response) envelope {
	t.Helper()
	defer resp.Body.Close()
	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env), "la respuesta debe ser un envelope JSON")
	return env
}

func decodeInvoice(t *testing.T, env envelope) invoiceBody {
	t.Helper()
	var inv invoiceBody
	require.NoError(t, json.Unmarshal(env.Data, &inv))
	return inv
}

func johnDoePayload() map[string]interface{} {
	return map[string]interface{}{
		"client_name":    "John Doe",
		"client_email":   "john@example.com",
		"client_address": "123 Main St",
		"invoice_date":   "2024-01-01",
		"due_date":       "2024-01-31",
		"tax_rate":       10,
		"items": []map[string]interface{}{
			{"description": "Web development", "quantity": 10, "unit_price": 100},
			{"description": "Hosting", "quantity": 1, "unit_price": "50.00"},
		},
	}
}

func createInvoice(t *testing.T, app *fiber.App, payload map[string]interface{}) invoiceBody {
	t.Helper()
	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", payload)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "errores: %v", env.Errors)
	return decodeInvoice(t, env)
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/v1/invoices
// ──────────────────────────────────────────────────────────────────────────────

func TestStore_CalculaTotales(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", johnDoePayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Invoice created successfully", env.Message)

	inv := decodeInvoice(t, env)
	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "draft", inv.Status, "status por defecto debe ser draft")
	assert.Equal(t, "10.00", inv.TaxRate)
	assert.Equal(t, "1050.00", inv.Subtotal)
	assert.Equal(t, "105.00", inv.TaxAmount)
	assert.Equal(t, "1155.00", inv.TotalAmount)
	assert.Equal(t, "2024-01-01", inv.InvoiceDate)
	assert.Nil(t, inv.Notes)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, "Web development", inv.Items[0].Description, "las líneas conservan el orden de envío")
	assert.Equal(t, "1000.00", inv.Items[0].LineTotal)
	assert.Equal(t, "50.00", inv.Items[1].LineTotal)
}

func TestStore_SinTaxRate_ImpuestoCero(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	delete(payload, "tax_rate")

	inv := createInvoice(t, app, payload)
	assert.Equal(t, "0.00", inv.TaxRate)
	assert.Equal(t, "0.00", inv.TaxAmount)
	assert.Equal(t, "1050.00", inv.TotalAmount)
}

func TestStore_CamposFaltantes_Retorna422(t *testing.T) {
	app, store := buildInvoiceApp(t, false)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", map[string]interface{}{
		"client_email": "no-es-un-email",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Validation failed", env.Message)
	for _, field := range []string{"client_name", "client_email", "client_address", "invoice_date", "due_date", "items"} {
		assert.Contains(t, env.Errors, field, "debe reportar error en %s", field)
	}

	n, err := store.Repository().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "no debe persistirse nada")
}

func TestStore_ItemInvalido_Retorna422ConRuta(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	payload["items"] = []map[string]interface{}{
		{"description": "Ok", "quantity": 1, "unit_price": 10},
		{"description": "Cantidad cero", "quantity": 0, "unit_price": 10},
	}

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "items.1.quantity")
}

func TestStore_DecimalNoNumerico_Retorna422ConRuta(t *testing.T) {
	app, store := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	payload["tax_rate"] = "ten"
	payload["items"] = []map[string]interface{}{
		{"description": "x", "quantity": 1, "unit_price": "abc"},
	}

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []string{"The items.0.unit price field must be a number."}, env.Errors["items.0.unit_price"])
	assert.Equal(t, []string{"The tax rate field must be a number."}, env.Errors["tax_rate"])
	assert.NotContains(t, env.Errors, "body")

	n, err := store.Repository().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_NombreEnBlanco_Retorna422(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	payload["client_name"] = "   "

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, []string{"The client name field is required."}, env.Errors["client_name"])
}

func TestStore_DueDateAnterior_Retorna422(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	payload["due_date"] = "2023-12-31"

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "due_date")
}

func TestStore_StatusInvalido_Retorna422(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	payload["status"] = "cancelled"

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", payload)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "status")
}

func TestStore_JSONInvalido_Retorna422(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", `{"client_name": `)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "body")
}

func TestStore_FalloAMitadDeTransaccion_NoDejaRastro(t *testing.T) {
	app, store := buildInvoiceApp(t, false)
	store.InjectFault(memory.OpCreateItem, errors.New("disco lleno"))

	resp, env := doJSON(t, app, http.MethodPost, "/api/v1/invoices", johnDoePayload())
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to create invoice", env.Message)
	assert.NotContains(t, string(env.Data), "disco lleno", "el detalle interno no debe filtrarse")

	n, err := store.Repository().Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n, "la cabecera debe revertirse junto con las líneas")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/v1/invoices y /api/v1/invoices/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestIndex_PaginaMasRecientesPrimero(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	for _, name := range []string{"Primero", "Segundo", "Tercero"} {
		p := johnDoePayload()
		p["client_name"] = name
		createInvoice(t, app, p)
	}

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/invoices?per_page=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Invoices retrieved successfully", env.Message)

	var page pageBody
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 2, page.PerPage)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, page.LastPage)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "Tercero", page.Data[0].ClientName)
	assert.Equal(t, "Segundo", page.Data[1].ClientName)
	assert.Len(t, page.Data[0].Items, 2, "cada factura viene con sus líneas")

	_, env = doJSON(t, app, http.MethodGet, "/api/v1/invoices?page=2&per_page=2", nil)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Primero", page.Data[0].ClientName)
	require.NotNil(t, page.From)
	assert.Equal(t, 3, *page.From)
}

func TestIndex_Vacio(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/invoices", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page pageBody
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 15, page.PerPage, "per_page por defecto")
	assert.Equal(t, 0, page.Total)
	assert.Empty(t, page.Data)
	assert.Nil(t, page.From)
}

func TestIndex_FalloDeStorage_Retorna500(t *testing.T) {
	app, store := buildInvoiceApp(t, false)
	store.InjectFault(memory.OpCount, errors.New("conexión perdida"))

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/invoices", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to retrieve invoices", env.Message)
}

func TestInternal_LogUnSoloComponente(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})
	store := memory.NewStore()
	invoiceUC := billing.NewInvoiceUseCase(store, store.Repository(), validation.NewInvoiceValidator(),
		billing.ListConfig{DefaultPerPage: 15, MaxPerPage: 100}, log.Component("billing"))
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, apphttp.RouterDeps{
		Invoices: apphttp.NewInvoiceHandler(invoiceUC, billing.NewPDFUseCase(store, infrapdf.NewMarotoPDFGenerator()), log.Component("http")),
	})
	store.InjectFault(memory.OpCount, errors.New("conexión perdida"))

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/invoices", nil)
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	line := strings.TrimSpace(buf.String())
	assert.Equal(t, 1, strings.Count(line, `"component"`), line)
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "http", entry["component"])
	assert.Equal(t, "/api/v1/invoices", entry["path"])
	assert.Contains(t, entry, "user_id")
}

func TestShow_Existente(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/invoices/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Invoice retrieved successfully", env.Message)
	inv := decodeInvoice(t, env)
	assert.Equal(t, created.ID, inv.ID)
	assert.Len(t, inv.Items, 2)
}

func TestShow_Inexistente_Retorna404(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)

	resp, env := doJSON(t, app, http.MethodGet, "/api/v1/invoices/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Invoice not found", env.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /api/v1/invoices/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_SoloCabecera_RecalculaConLineasExistentes(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/"+created.ID, map[string]interface{}{
		"tax_rate": 20,
		"status":   "sent",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "errores: %v", env.Errors)
	assert.Equal(t, "Invoice updated successfully", env.Message)

	inv := decodeInvoice(t, env)
	assert.Equal(t, "sent", inv.Status)
	assert.Equal(t, "1050.00", inv.Subtotal)
	assert.Equal(t, "210.00", inv.TaxAmount)
	assert.Equal(t, "1260.00", inv.TotalAmount)
	assert.Equal(t, "John Doe", inv.ClientName, "campos ausentes no cambian")
	require.Len(t, inv.Items, 2)
	assert.Equal(t, created.Items[0].ID, inv.Items[0].ID, "sin items las líneas se conservan")
}

func TestUpdate_ReemplazaLineas(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/"+created.ID, map[string]interface{}{
		"items": []map[string]interface{}{
			{"description": "Web development", "quantity": 10, "unit_price": 100},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, "errores: %v", env.Errors)

	inv := decodeInvoice(t, env)
	require.Len(t, inv.Items, 1)
	assert.NotEqual(t, created.Items[0].ID, inv.Items[0].ID, "las líneas reemplazadas tienen identidad nueva")
	assert.Equal(t, "1000.00", inv.Subtotal)
	assert.Equal(t, "100.00", inv.TaxAmount)
	assert.Equal(t, "1100.00", inv.TotalAmount)
}

func TestUpdate_ItemsVacio_Retorna422(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/"+created.ID, map[string]interface{}{
		"items": []interface{}{},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "items")
}

func TestUpdate_NullBorraNotasYTasa(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	payload["notes"] = "Net 30"
	created := createInvoice(t, app, payload)
	require.NotNil(t, created.Notes)
	require.Equal(t, "1155.00", created.TotalAmount)

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/"+created.ID, `{"notes": null, "tax_rate": null}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, "errores: %v", env.Errors)
	inv := decodeInvoice(t, env)
	assert.Nil(t, inv.Notes)
	assert.Equal(t, "0.00", inv.TaxRate)
	assert.Equal(t, "0.00", inv.TaxAmount)
	assert.Equal(t, "1050.00", inv.TotalAmount)
}

func TestUpdate_ClaveAusenteConservaNotas(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	payload := johnDoePayload()
	payload["notes"] = "Net 30"
	created := createInvoice(t, app, payload)

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/"+created.ID, `{"status": "sent"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	inv := decodeInvoice(t, env)
	require.NotNil(t, inv.Notes)
	assert.Equal(t, "Net 30", *inv.Notes)
	assert.Equal(t, "1155.00", inv.TotalAmount)
}

func TestUpdate_DueDateContraFechaGuardada_Retorna422(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/"+created.ID, map[string]interface{}{
		"due_date": "2023-06-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, env.Errors, "due_date")
}

func TestUpdate_Inexistente_Retorna404(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/no-existe", map[string]interface{}{
		"status": "paid",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invoice not found", env.Message)
}

func TestUpdate_FalloAlReinsertar_ConservaEstadoAnterior(t *testing.T) {
	app, store := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())
	store.InjectFault(memory.OpCreateItem, errors.New("timeout"))

	resp, env := doJSON(t, app, http.MethodPut, "/api/v1/invoices/"+created.ID, map[string]interface{}{
		"tax_rate": 50,
		"items": []map[string]interface{}{
			{"description": "Nuevo", "quantity": 1, "unit_price": 1},
		},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Failed to update invoice", env.Message)

	_, env = doJSON(t, app, http.MethodGet, "/api/v1/invoices/"+created.ID, nil)
	inv := decodeInvoice(t, env)
	assert.Equal(t, "10.00", inv.TaxRate)
	assert.Equal(t, "1155.00", inv.TotalAmount)
	require.Len(t, inv.Items, 2)
	assert.Equal(t, created.Items[0].ID, inv.Items[0].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// DELETE /api/v1/invoices/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestDestroy_EliminaEnCascada(t *testing.T) {
	app, store := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())

	resp, env := doJSON(t, app, http.MethodDelete, "/api/v1/invoices/"+created.ID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Invoice deleted successfully", env.Message)

	items, err := store.Repository().GetItemsByInvoiceID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, items, "las líneas se eliminan con la factura")

	resp, _ = doJSON(t, app, http.MethodGet, "/api/v1/invoices/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDestroy_Inexistente_Retorna404(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)

	resp, env := doJSON(t, app, http.MethodDelete, "/api/v1/invoices/no-existe", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Invoice not found", env.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// PDF y autenticación opcional
// ──────────────────────────────────────────────────────────────────────────────

func TestPDF_DevuelveDocumento(t *testing.T) {
	app, _ := buildInvoiceApp(t, false)
	created := createInvoice(t, app, johnDoePayload())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices/"+created.ID+"/pdf", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "invoice-"+created.ID+".pdf")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")), "el cuerpo debe ser un PDF")
}

func TestInvoices_RequireAuth(t *testing.T) {
	app, _ := buildInvoiceApp(t, true)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/invoices", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	req.Header.Set("Authorization", bearer(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

package http

import (
	"github.com/gofiber/fiber/v2"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Invoices            *InvoiceHandler
	JWTSecret           string
	InvoicesRequireAuth bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Usuario autenticado (siempre protegido)
	userHandler := NewUserHandler()
	api.Get("/user", AuthMiddleware(deps.JWTSecret), userHandler.Me)

	v1 := api.Group("/v1")
	invoices := v1.Group("/invoices")
	if deps.InvoicesRequireAuth {
		invoices.Use(AuthMiddleware(deps.JWTSecret))
	}
	invoices.Get("/", deps.Invoices.Index)
	invoices.Post("/", deps.Invoices.Store)
	invoices.Get("/:id", deps.Invoices.Show)
	invoices.Put("/:id", deps.Invoices.Update)
	invoices.Delete("/:id", deps.Invoices.Destroy)
	invoices.Get("/:id/pdf", deps.Invoices.PDF)
}

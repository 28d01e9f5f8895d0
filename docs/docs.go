// Package docs registra la especificación Swagger de la API en swag.
package docs

import (
	_ "embed"

	"github.com/swaggo/swag"
)

// FilePath ruta del JSON servido por el middleware de Swagger UI (relativa al directorio de trabajo).
const FilePath = "./docs/swagger.json"

//go:embed swagger.json
var docTemplate string

// SwaggerInfo metadatos de la especificación.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Invoice API",
	Description:      "CRUD de facturas con líneas de detalle y totales derivados.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

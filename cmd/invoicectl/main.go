// Command invoicectl tareas operativas de la API de facturas: migraciones, datos de
// ejemplo y emisión de tokens de prueba.
package main

func main() {
	Execute()
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-api/internal/application/billing"
	"github.com/jhoicas/invoice-api/internal/application/validation"
	"github.com/jhoicas/invoice-api/internal/infrastructure/postgres"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Crea las facturas de ejemplo",
	Long: `Crea dos facturas de ejemplo (John Doe y Jane Smith) usando el mismo flujo
transaccional que POST /api/v1/invoices, de modo que los totales se calculan igual.`,
	Example: `  invoicectl seed
  invoicectl seed --migrate=false`,
	Args: cobra.NoArgs,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().Bool("migrate", true, "aplicar migraciones antes de sembrar")
}

func runSeed(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	migrate, _ := cmd.Flags().GetBool("migrate")

	ctx := cmd.Context()
	pool, err := e.openPool(ctx, migrate)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := billing.NewInvoiceUseCase(
		postgres.NewTxRunner(pool),
		postgres.NewInvoiceRepository(pool),
		validation.NewInvoiceValidator(),
		billing.ListConfig{DefaultPerPage: e.cfg.Pagination.DefaultPerPage, MaxPerPage: e.cfg.Pagination.MaxPerPage},
		e.log.Component("seed"),
	)
	created, err := uc.SeedDemo(ctx)
	if err != nil {
		return err
	}
	for _, inv := range created {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", inv.ID, inv.ClientName, inv.TotalAmount)
	}
	return nil
}

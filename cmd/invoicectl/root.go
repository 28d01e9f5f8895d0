package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-api/internal/infrastructure/postgres"
	"github.com/jhoicas/invoice-api/pkg/config"
	"github.com/jhoicas/invoice-api/pkg/logger"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "invoicectl",
	Short: "Herramientas operativas de la API de facturas",
	Long: `invoicectl agrupa las tareas que no forman parte del servidor HTTP:
aplicar migraciones, sembrar facturas de ejemplo y emitir tokens JWT de prueba.

La configuración se lee igual que en el servidor (variables de entorno o .env).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute ejecuta el comando raíz y termina con código 1 si falla.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, tokenCmd)
}

// env dependencias comunes de los subcomandos.
type env struct {
	cfg *config.Config
	log *logger.Logger
}

func loadEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}
	return &env{
		cfg: cfg,
		log: logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Out: os.Stderr}),
	}, nil
}

// openPool abre el pool y, si migrate es true, aplica las migraciones embebidas.
func (e *env) openPool(ctx context.Context, migrate bool) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(ctx, e.cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return pool, nil
}

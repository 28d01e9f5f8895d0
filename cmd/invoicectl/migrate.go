package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones embebidas",
	Example: `  # Crear o actualizar el esquema
  invoicectl migrate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		e, err := loadEnv()
		if err != nil {
			return err
		}
		pool, err := e.openPool(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer pool.Close()

		e.log.Info().Msg("migraciones aplicadas")
		return nil
	},
}

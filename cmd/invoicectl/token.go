package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/invoice-api/pkg/jwt"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite un JWT firmado con JWT_SECRET",
	Example: `  # Token para GET /api/user
  invoicectl token --email ana@example.com --name Ana

  # Usarlo con curl
  curl -H "Authorization: Bearer $(invoicectl token)" localhost:8080/api/user`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().String("user-id", "", "ID del usuario (por defecto un UUID nuevo)")
	tokenCmd.Flags().String("email", "dev@example.com", "email del usuario")
	tokenCmd.Flags().String("name", "Developer", "nombre del usuario")
	tokenCmd.Flags().Int("expires", 0, "minutos de validez (por defecto JWT_EXPIRATION_MINUTES)")
}

func runToken(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	userID, _ := cmd.Flags().GetString("user-id")
	if userID == "" {
		userID = uuid.New().String()
	}
	email, _ := cmd.Flags().GetString("email")
	name, _ := cmd.Flags().GetString("name")
	expires, _ := cmd.Flags().GetInt("expires")
	if expires <= 0 {
		expires = e.cfg.JWT.Expiration
	}

	tok, err := jwt.Generate(e.cfg.JWT.Secret, jwt.Identity{UserID: userID, Email: email, Name: name}, e.cfg.JWT.Issuer, expires)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}

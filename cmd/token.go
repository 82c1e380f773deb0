package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gitlab.com/railsync.net/internal/adapter/crypto"
	"gitlab.com/railsync.net/internal/config"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the ingest API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		jwtCfg := config.NewJwtConfig(config.Environ())
		token, err := crypto.NewJWTService(jwtCfg).GenerateTokenHMAC(cmd.Context(), tokenSubject, jwtCfg.TokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "ci", "token subject")
}

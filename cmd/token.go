/*
Copyright © 2026 lifeline authors

*/
package cmd

import (
	"time"

	"github.com/lifeline-sos/lifeline/auth"
	"github.com/spf13/cobra"
)

var tokenTTLArg time.Duration

func init() {
	serverCmd.AddCommand(createTokenCmd())
}

func createTokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the lifeline API",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := serverConfig().GetString("lifeline.authSecret")
			if secret == "" {
				return formattedError("'lifeline.authSecret' must be set in the server config")
			}

			token, err := auth.EncodeJWT(secret, tokenTTLArg)
			if err != nil {
				return err
			}

			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().DurationVar(&tokenTTLArg, "ttl", 24*time.Hour, "how long the token stays valid")

	return cmd
}

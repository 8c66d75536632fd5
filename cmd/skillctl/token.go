package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"skill-match/internal/config"
	"skill-match/internal/pkg/jwt"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a curator bearer token for the write endpoints",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.FromViper(v)
		if err != nil {
			return err
		}
		svc := jwt.NewHMACService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		token, err := svc.Issue(tokenSubject)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "curator", "token subject recorded in the sub claim")
	rootCmd.AddCommand(tokenCmd)
}

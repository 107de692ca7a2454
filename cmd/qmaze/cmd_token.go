package main

import (
	"fmt"
	"time"

	"github.com/beka-birhanu/qmaze/config"
	"github.com/beka-birhanu/qmaze/infrastruture/token"
	"github.com/beka-birhanu/qmaze/service"
	"github.com/spf13/cobra"
)

var (
	tokenSubject string
	tokenTTL     time.Duration

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the protected endpoints",
		RunE:  runToken,
	}
)

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "qmaze-cli", "token subject")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}

func runToken(cmd *cobra.Command, _ []string) error {
	secret, issuer := config.LoadTokenConfig()
	tokenizer, err := token.NewJwtService(secret, issuer)
	if err != nil {
		return err
	}

	auth, err := service.NewAuth(tokenizer)
	if err != nil {
		return err
	}

	signed, err := auth.IssueToken(tokenSubject, tokenTTL)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), signed)
	return nil
}

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/murkotick/storefront-service/internal/config"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
)

func newTokenCmd(cfg *config.Config) *cobra.Command {
	var (
		email string
		admin bool
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <uid>",
		Short: "Mint a development bearer token signed with JWT_SECRET",
		Example: `  storefront token user-1 --email user@example.com
  storefront token root --admin --ttl 1h`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is required")
			}
			tok, err := auth.Mint(cfg.JWTSecret, auth.Identity{UID: args[0], Email: email, Admin: admin}, ttl, time.Now())
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().BoolVar(&admin, "admin", false, "grant the admin claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	return cmd
}

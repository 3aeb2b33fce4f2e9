package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gokaycavdar/go-georisk/pkg/auth"
)

func newTokenCmd() *cobra.Command {
	var ttl time.Duration

	cmd := &cobra.Command{
		Use:   "token <caller-id>",
		Short: "Issue a caller token for local testing",
		Long: `Sign a bearer token with GEORISK_JWT_SECRET (or the configured
auth.secret_env) for calling the API locally.

Example:
  curl -H "Authorization: Bearer $(georisk token user_123)" ...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			token, err := auth.Issue(auth.Config{
				Secret:   cfg.Auth.Secret(),
				Issuer:   cfg.Auth.Issuer,
				Audience: cfg.Auth.Audience,
			}, args[0], ttl)
			if err != nil {
				return fmt.Errorf("%w (set %s)", err, cfg.Auth.SecretEnv)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/berryseed/327project-group10/internal/service"
	"github.com/berryseed/327project-group10/pkg/config"
)

func newTokenCmd() *cobra.Command {
	var (
		email string
		ttl   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Mint a development access token signed with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.Env == config.EnvProduction {
				return fmt.Errorf("refusing to mint tokens in %s", cfg.Env)
			}
			auth := service.NewAuthService(nil, service.AuthConfig{
				AccessTokenSecret: cfg.JWT.Secret,
				AccessTokenExpiry: ttl,
				Issuer:            cfg.JWT.Issuer,
			})
			token, err := auth.GenerateToken(args[0], email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}

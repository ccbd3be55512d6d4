// Package cli is campusctl, the operator tool. It is the only writer of
// role assignments besides signup.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"campus_hub/internal/config"
	"campus_hub/internal/models"
	"campus_hub/internal/policy"
	"campus_hub/internal/store"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DatabaseURL string

	// Open connects to the database. Tests swap it for SQLite.
	Open func(dsn string) (*gorm.DB, error)
}

// NewRootCommand creates the root command for campusctl.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{Open: config.Open})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campusctl",
		Short: "Operate the campus hub database",
		Long:  "Administrative commands for the campus hub: schema migration, role grants and account removal.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.DatabaseURL == "" {
				opts.DatabaseURL = config.DatabaseURL()
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DatabaseURL, "database-url", "", "database DSN (defaults to DATABASE_URL or DB_* variables)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewGrantRoleCommand(opts))
	cmd.AddCommand(NewRevokeRoleCommand(opts))
	cmd.AddCommand(NewListRolesCommand(opts))
	cmd.AddCommand(NewDeleteUserCommand(opts))

	return cmd
}

func (o *RootOptions) store() (*store.Store, error) {
	db, err := o.Open(o.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return store.New(db, policy.Rules{}), nil
}

// account resolves an email to its account.
func account(ctx context.Context, st *store.Store, email string) (*models.Account, error) {
	acct, err := st.FindAccountByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, fmt.Errorf("no account for %s: %w", email, err)
	}
	return acct, nil
}

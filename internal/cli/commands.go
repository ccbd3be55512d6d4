package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"campus_hub/internal/config"
	"campus_hub/internal/models"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.Open(opts.DatabaseURL)
			if err != nil {
				return err
			}
			if err := config.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema up to date")
			return nil
		},
	}
}

type roleFlags struct {
	email string
	role  string
}

func (f *roleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().StringVar(&f.role, "role", models.RoleAdmin, "role name (admin|user)")
}

func (f *roleFlags) validate() error {
	if !models.ValidRole(f.role) {
		return fmt.Errorf("unknown role %q", f.role)
	}
	return nil
}

// NewGrantRoleCommand creates the grant-role command.
func NewGrantRoleCommand(opts *RootOptions) *cobra.Command {
	f := &roleFlags{}
	cmd := &cobra.Command{
		Use:   "grant-role",
		Short: "Grant a role to an account",
		Long: `Grant a role to an account. Granting a role the account already has is a no-op.

Examples:
  campusctl grant-role --email dean@campus.edu
  campusctl grant-role --email ta@campus.edu --role user`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			ctx := context.Background()
			st, err := opts.store()
			if err != nil {
				return err
			}
			acct, err := account(ctx, st, f.email)
			if err != nil {
				return err
			}
			if err := st.GrantRole(ctx, acct.ID, f.role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "granted %s to %s\n", f.role, acct.Email)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

// NewRevokeRoleCommand creates the revoke-role command.
func NewRevokeRoleCommand(opts *RootOptions) *cobra.Command {
	f := &roleFlags{}
	cmd := &cobra.Command{
		Use:   "revoke-role",
		Short: "Revoke a role from an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			ctx := context.Background()
			st, err := opts.store()
			if err != nil {
				return err
			}
			acct, err := account(ctx, st, f.email)
			if err != nil {
				return err
			}
			if err := st.RevokeRole(ctx, acct.ID, f.role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "revoked %s from %s\n", f.role, acct.Email)
			return nil
		},
	}
	f.bind(cmd)
	return cmd
}

// NewListRolesCommand creates the list-roles command.
func NewListRolesCommand(opts *RootOptions) *cobra.Command {
	var email string
	cmd := &cobra.Command{
		Use:   "list-roles",
		Short: "Show the roles of an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, err := opts.store()
			if err != nil {
				return err
			}
			acct, err := account(ctx, st, email)
			if err != nil {
				return err
			}
			roles, err := st.RoleNames(ctx, acct.ID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", acct.Email, strings.Join(roles, ", "))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

// NewDeleteUserCommand creates the delete-user command.
func NewDeleteUserCommand(opts *RootOptions) *cobra.Command {
	var (
		email string
		yes   bool
	)
	cmd := &cobra.Command{
		Use:   "delete-user",
		Short: "Delete an account and everything it owns",
		Long: `Delete an account. Profile, roles, sessions, travel posts, emergencies,
errands and rides go with it; activity entries are kept with no actor.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to delete without --yes")
			}
			ctx := context.Background()
			st, err := opts.store()
			if err != nil {
				return err
			}
			acct, err := account(ctx, st, email)
			if err != nil {
				return err
			}
			if err := st.DeleteAccount(ctx, acct.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", acct.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email (required)")
	_ = cmd.MarkFlagRequired("email")
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/alexanderramin/horizon/internal/auth"
	"github.com/alexanderramin/horizon/internal/cli/formatter"
	"github.com/alexanderramin/horizon/internal/domain"
	"github.com/spf13/cobra"
)

func newUserCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}

	var name, role string
	add := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.Users.Register(cmd.Context(), name, domain.Role(role))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s [%d] as %s\n", u.Name, u.ID, u.Role)
			return nil
		},
	}
	add.Flags().StringVar(&name, "name", "", "User name")
	add.Flags().StringVar(&role, "role", string(domain.RolePlanner), "viewer, planner, domain_manager or administrator")
	_ = add.MarkFlagRequired("name")

	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := a.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{fmt.Sprint(u.ID), u.Name, string(u.Role)})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME", "ROLE"}, rows))
			return nil
		},
	}

	cmd.AddCommand(add, list)
	return cmd
}

func newTokenCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API bearer tokens",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "issue",
		Short: "Issue a bearer token for the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.actor(cmd)
			if err != nil {
				return err
			}
			tok, err := a.Tokens.Issue(auth.Identity{UserID: u.ID, Name: u.Name, Role: u.Role})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	})
	return cmd
}

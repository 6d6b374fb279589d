package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chadmarket/backoffice/internal/model"
)

func newRolesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "Manage administrator role grants",
		Long: `Grant, revoke, and list the administrative roles that gate access to
the console. An account with credentials but no grant cannot log in.`,
	}

	cmd.AddCommand(newRolesListCmd())
	cmd.AddCommand(newRolesGrantCmd())
	cmd.AddCommand(newRolesRevokeCmd())

	return cmd
}

// ---------- roles list ----------

func newRolesListCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all role grants",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRolesList(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func runRolesList(jsonOutput bool) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	grants, err := st.ListGrants(context.Background())
	if err != nil {
		return fmt.Errorf("list grants: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(grants)
	}

	if len(grants) == 0 {
		fmt.Println("No role grants. Use 'backoffice roles grant' to add one.")
		return nil
	}

	fmt.Printf("%-35s %-25s %-15s\n", "EMAIL", "NAME", "ROLE")
	fmt.Printf("%-35s %-25s %-15s\n", "-----", "----", "----")
	for _, g := range grants {
		fmt.Printf("%-35s %-25s %-15s\n", g.Email, g.Name, g.Role)
	}
	return nil
}

// ---------- roles grant ----------

func newRolesGrantCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "grant <email> <role>",
		Short: "Grant an administrative role to an email",
		Example: `  backoffice roles grant admin@example.td super_admin
  backoffice roles grant reviewer@example.td moderator_docs --name "Doc Reviewer"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRolesGrant(args[0], args[1], name)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the administrator")

	return cmd
}

func runRolesGrant(email, roleArg, name string) error {
	role := model.AdminRole(roleArg)
	if !role.Valid() {
		return fmt.Errorf("unknown role %q (valid: super_admin, moderator_docs, moderator_ads, analyst)", roleArg)
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.GrantRole(context.Background(), email, name, role); err != nil {
		return fmt.Errorf("grant role: %w", err)
	}
	fmt.Printf("Granted %s to %s.\n", role, email)
	return nil
}

// ---------- roles revoke ----------

func newRolesRevokeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "revoke <email>",
		Short: "Revoke an email's administrative role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRolesRevoke(args[0])
		},
	}

	return cmd
}

func runRolesRevoke(email string) error {
	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.RevokeRole(context.Background(), email); err != nil {
		return fmt.Errorf("revoke role: %w", err)
	}
	fmt.Printf("Revoked administrative access for %s.\n", email)
	return nil
}

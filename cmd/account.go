package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gho-cli/gho/internal/account"
	"github.com/gho-cli/gho/internal/keychain"
	"github.com/gho-cli/gho/internal/models"
	"github.com/gho-cli/gho/internal/style"
)

var (
	addUsername   string
	addKind       string
	addToken      string
	addDefaultOrg string
	addProtocol   string
	addCloneDir   string
)

// accountCmd represents the account command
var accountCmd = &cobra.Command{
	Use:     "account",
	Aliases: []string{"a"},
	Short:   "Manage GitHub accounts",
	Long: `Manage GitHub account identities and their stored tokens.

Examples:
  # Register a work account
  gho account add acme --username alice-acme --kind work --token ghp_xxx

  # Switch accounts (interactive when no ID is given)
  gho account use
  gho account use acme

  # Inspect and clean up
  gho account show
  gho account remove acme`,
}

var accountAddCmd = &cobra.Command{
	Use:   "add <id>",
	Short: "Add a new account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := models.ParseKind(addKind)
		if err != nil {
			return err
		}
		protocol, err := models.ParseProtocol(addProtocol)
		if err != nil {
			return err
		}
		if addUsername == "" {
			return fmt.Errorf("--username is required")
		}
		if addToken == "" {
			return fmt.Errorf("--token is required")
		}

		st, vault, err := deps()
		if err != nil {
			return err
		}
		if err := account.Add(st, vault, account.AddOptions{
			ID:         args[0],
			Username:   addUsername,
			Kind:       kind,
			Token:      addToken,
			DefaultOrg: addDefaultOrg,
			Protocol:   protocol,
			CloneDir:   addCloneDir,
		}); err != nil {
			return err
		}

		fmt.Printf("%s Added account %q\n", style.SuccessPrefix, args[0])
		return nil
	},
}

var accountListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List all accounts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := deps()
		if err != nil {
			return err
		}
		accounts, err := account.List(st)
		if err != nil {
			return err
		}

		all := accounts.All()
		if len(all) == 0 {
			fmt.Println("No accounts configured.")
			return nil
		}

		fmt.Println(style.Bold.Render("Accounts:"))
		for _, acc := range all {
			marker := ""
			if accounts.ActiveAccountID == acc.ID {
				marker = style.Success.Render(" (active)")
			}
			fmt.Printf("  %s (%s) - %s [%s]%s\n", acc.ID, acc.Kind, acc.Username, acc.Protocol, marker)
		}
		return nil
	},
}

var accountUseCmd = &cobra.Command{
	Use:     "use [id]",
	Aliases: []string{"u"},
	Short:   "Switch active account",
	Long:    "Switch the active account. Interactive selection when no ID is given.",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, _, err := deps()
		if err != nil {
			return err
		}

		var selected string
		if len(args) == 1 {
			if err := account.Switch(st, args[0]); err != nil {
				return err
			}
			selected = args[0]
		} else {
			selected, err = account.SwitchInteractive(st)
			if err != nil {
				return err
			}
		}

		fmt.Printf("%s Switched to account %q\n", style.SuccessPrefix, selected)
		return nil
	},
}

var accountShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show active account details",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, vault, err := deps()
		if err != nil {
			return err
		}
		acc, err := account.Show(st)
		if err != nil {
			return err
		}

		masked := "(not found)"
		if token, err := vault.Retrieve(acc.ID); err == nil {
			masked = keychain.MaskToken(token)
		}

		fmt.Println(style.Bold.Render("Active account:"))
		fmt.Printf("  ID:       %s\n", acc.ID)
		fmt.Printf("  Kind:     %s\n", acc.Kind)
		fmt.Printf("  Username: %s\n", acc.Username)
		fmt.Printf("  Protocol: %s\n", acc.Protocol)
		fmt.Printf("  Token:    %s\n", masked)
		if acc.DefaultOrg != "" {
			fmt.Printf("  Org:      %s\n", acc.DefaultOrg)
		}
		if acc.CloneDir != "" {
			fmt.Printf("  Clone:    %s\n", acc.CloneDir)
		}
		return nil
	},
}

var accountRemoveCmd = &cobra.Command{
	Use:     "remove <id>",
	Aliases: []string{"rm"},
	Short:   "Remove an account",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, vault, err := deps()
		if err != nil {
			return err
		}
		if err := account.Remove(st, vault, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Removed account %q\n", style.SuccessPrefix, args[0])
		return nil
	},
}

func init() {
	accountAddCmd.Flags().StringVarP(&addUsername, "username", "u", "", "GitHub username")
	accountAddCmd.Flags().StringVarP(&addKind, "kind", "k", "personal", "Account kind: personal, work")
	accountAddCmd.Flags().StringVarP(&addToken, "token", "t", "", "GitHub personal access token")
	accountAddCmd.Flags().StringVarP(&addDefaultOrg, "default-org", "o", "", "Default organization for repo operations")
	accountAddCmd.Flags().StringVarP(&addProtocol, "protocol", "p", "ssh", "Clone protocol: ssh, https")
	accountAddCmd.Flags().StringVarP(&addCloneDir, "clone-dir", "d", "", "Base directory for clone targets")

	accountCmd.AddCommand(accountAddCmd, accountListCmd, accountUseCmd, accountShowCmd, accountRemoveCmd)
	rootCmd.AddCommand(accountCmd)
}

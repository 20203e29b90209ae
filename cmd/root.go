package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gho-cli/gho/internal/keychain"
	"github.com/gho-cli/gho/internal/storage"
)

var version = "1.0.0" // This will be set during build

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gho",
	Short: "GitHub operator CLI for multi-account workflows",
	Long: `gho manages multiple GitHub accounts on one machine. Tokens are kept
in the OS credential store; repository and pull request commands run
against whichever account is currently active.`,
	SilenceUsage: true,
}

// deps returns the storage and vault every subcommand operates on.
func deps() (storage.Storage, keychain.Vault, error) {
	st, err := storage.NewDefault()
	if err != nil {
		return nil, nil, err
	}
	return st, keychain.System(), nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of gho",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("gho v%s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)
}

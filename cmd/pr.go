package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gho-cli/gho/internal/pr"
)

var prListLimit int

// prCmd represents the pr command
var prCmd = &cobra.Command{
	Use:     "pr",
	Aliases: []string{"p"},
	Short:   "Manage pull requests",
}

var prListCmd = &cobra.Command{
	Use:     "list [owner/repo]",
	Aliases: []string{"ls"},
	Short:   "List open pull requests",
	Long:    "List open pull requests. The repository is detected from the working tree when no owner/repo argument is given.",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, vault, err := deps()
		if err != nil {
			return err
		}

		spec := ""
		if len(args) == 1 {
			spec = args[0]
		}
		prs, err := pr.List(st, vault, spec, prListLimit)
		if err != nil {
			return err
		}

		for _, p := range prs {
			line, err := json.Marshal(p)
			if err != nil {
				return err
			}
			fmt.Println(string(line))
		}
		return nil
	},
}

func init() {
	prListCmd.Flags().IntVarP(&prListLimit, "limit", "l", 30, "Maximum number of PRs")

	prCmd.AddCommand(prListCmd)
	rootCmd.AddCommand(prCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gho-cli/gho/internal/repo"
	"github.com/gho-cli/gho/internal/style"
)

var (
	repoListOrg   string
	repoListLimit int
	repoListJSON  bool
	cloneOrg      string
	cloneLimit    int
)

// repoCmd represents the repo command
var repoCmd = &cobra.Command{
	Use:     "repo",
	Aliases: []string{"r"},
	Short:   "Manage repositories",
	Long: `List and clone repositories using the active account's credentials.

Examples:
  # List your repositories, or an organization's
  gho repo list
  gho repo list --org acme

  # Clone one repository, or everything in an organization
  gho repo clone octocat/hello-world
  gho repo clone --org acme --limit 20`,
}

var repoListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List repositories",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, vault, err := deps()
		if err != nil {
			return err
		}
		repos, err := repo.List(st, vault, repoListOrg, repoListLimit)
		if err != nil {
			return err
		}

		for _, r := range repos {
			if repoListJSON {
				line, err := json.Marshal(map[string]any{
					"name":      r.Name,
					"url":       r.HTMLURL,
					"pushed_at": r.PushedAt,
					"owner":     r.Owner.Login,
				})
				if err != nil {
					return err
				}
				fmt.Println(string(line))
			} else {
				fmt.Printf("%s %s\n", r.FullName, style.Dim.Render(r.HTMLURL))
			}
		}
		return nil
	},
}

var repoCloneCmd = &cobra.Command{
	Use:     "clone [owner/repo]",
	Aliases: []string{"cl"},
	Short:   "Clone a repository, or an organization's repositories",
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, vault, err := deps()
		if err != nil {
			return err
		}

		if cloneOrg != "" {
			cloned, err := repo.CloneOrg(st, vault, cloneOrg, cloneLimit)
			if err != nil {
				return err
			}
			if len(cloned) == 0 {
				fmt.Println("No repositories cloned.")
				return nil
			}
			fmt.Printf("%s Cloned %d repositories:\n", style.SuccessPrefix, len(cloned))
			for _, name := range cloned {
				fmt.Printf("  - %s\n", name)
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("provide either a repo (owner/repo) or the --org flag")
		}
		if err := repo.Clone(st, vault, args[0]); err != nil {
			return err
		}
		fmt.Printf("%s Cloned %q\n", style.SuccessPrefix, args[0])
		return nil
	},
}

func init() {
	repoListCmd.Flags().StringVarP(&repoListOrg, "org", "o", "", "Organization to list repos from")
	repoListCmd.Flags().IntVarP(&repoListLimit, "limit", "l", 30, "Maximum number of repositories")
	repoListCmd.Flags().BoolVar(&repoListJSON, "json", false, "Output as JSON, one object per line")

	repoCloneCmd.Flags().StringVar(&cloneOrg, "org", "", "Organization to bulk clone from")
	repoCloneCmd.Flags().IntVarP(&cloneLimit, "limit", "l", 10, "Maximum repos to clone (for bulk)")

	repoCmd.AddCommand(repoListCmd, repoCloneCmd)
	rootCmd.AddCommand(repoCmd)
}

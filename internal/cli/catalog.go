package cli

import (
	"book-recommender/backend/internal/agent/prompt"
	"book-recommender/backend/internal/model"

	"github.com/spf13/cobra"
)

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "List the literary hints one of which is added to every request",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		renderList(cmd.OutOrStdout(), "Literary hints:", prompt.LiteraryHints)
	},
}

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the selectable literature regions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		regions := model.Regions()
		names := make([]string, len(regions))
		for i, r := range regions {
			names[i] = string(r)
		}
		renderList(cmd.OutOrStdout(), "Regions:", names)
	},
}

func init() {
	rootCmd.AddCommand(hintsCmd)
	rootCmd.AddCommand(regionsCmd)
}

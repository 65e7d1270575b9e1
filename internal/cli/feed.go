package cli

import (
	"community-pet/internal/client"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "feed",
		Short: "Lista las acciones recientes de la comunidad",
		Run:   runFeed,
	}
	cmd.Flags().IntP("limit", "l", client.DefaultFeedLimit, "Máximo de acciones (1-100)")
	RootCmd.AddCommand(cmd)
}

func runFeed(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")

	api, err := newAPI()
	if err != nil {
		exitErr("api", err)
	}
	page, err := api.CommunityLog(cmd.Context(), limit)
	if err != nil {
		exitErr("feed", err)
	}
	printFeed(cmd.OutOrStdout(), page)
}

package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "announce",
		Short: "Publica un aviso en el canal de la comunidad",
		Run:   runAnnounce,
	}

	cmd.Flags().StringP("action", "a", "", "Acción (required)")
	cmd.Flags().StringP("message", "m", "", "Mensaje (required)")
	cmd.MarkFlagRequired("action")
	cmd.MarkFlagRequired("message")

	RootCmd.AddCommand(cmd)
}

func runAnnounce(cmd *cobra.Command, args []string) {
	action, _ := cmd.Flags().GetString("action")
	message, _ := cmd.Flags().GetString("message")

	api, err := newAPI()
	if err != nil {
		exitErr("api", err)
	}
	if err := api.Announce(cmd.Context(), action, message); err != nil {
		exitErr("announce", err)
	}
	printOut(cmd.OutOrStdout(), map[string]string{"status": "success"}, func(w io.Writer) {
		fmt.Fprintln(w, "announced")
	})
}

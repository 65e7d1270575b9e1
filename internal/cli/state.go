package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Muestra el estado compartido de la mascota",
		Run:   runState,
	}
	RootCmd.AddCommand(cmd)
}

func runState(cmd *cobra.Command, args []string) {
	s, err := newSession(cmd)
	if err != nil {
		exitErr("state", err)
	}
	if s.View().LastActionBy == "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "no shared state yet, showing birth stats")
	}
	printView(cmd.OutOrStdout(), s.View())
}

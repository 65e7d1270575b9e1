package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "restart",
		Short: "Reinicia la mascota (anuncia la muerte si estaba muerta)",
		Run:   runRestart,
	}
	RootCmd.AddCommand(cmd)
}

func runRestart(cmd *cobra.Command, args []string) {
	s, err := newSession(cmd)
	if err != nil {
		exitErr("session", err)
	}
	if err := s.Restart(cmd.Context()); err != nil {
		exitErr("restart", err)
	}
	printView(cmd.OutOrStdout(), s.View())
}

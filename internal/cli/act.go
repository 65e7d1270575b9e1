package cli

import (
	"fmt"
	"io"

	"community-pet/internal/domain/pet"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:       "act <feed|play|clean|sleep|talk>",
		Short:     "Aplica una acción sobre el estado compartido actual",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"feed", "play", "clean", "sleep", "talk"},
		Run:       runAct,
	}
	RootCmd.AddCommand(cmd)
}

func runAct(cmd *cobra.Command, args []string) {
	kind, err := pet.ParseAction(args[0])
	if err != nil {
		exitErr("action", fmt.Errorf("%w: %q", err, args[0]))
	}

	s, err := newSession(cmd)
	if err != nil {
		exitErr("session", err)
	}

	out, err := s.Act(cmd.Context(), kind)
	if err != nil {
		exitErr("act", err)
	}

	printOut(cmd.OutOrStdout(), out, func(w io.Writer) {
		fmt.Fprintln(w, out.Message)
	})
	printView(cmd.OutOrStdout(), s.View())
}

package cli

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"community-pet/internal/client"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Corre el loop de sincronización (decay, estado y feed)",
		Run:   runWatch,
	}

	cmd.Flags().Duration("print-every", 0, "Cada cuánto imprimir la vista (default: TICK_PERIOD)")
	cmd.Flags().Bool("no-decay", false, "Solo observar: no aplica ni escribe decay")

	RootCmd.AddCommand(cmd)
}

func runWatch(cmd *cobra.Command, args []string) {
	printEvery, _ := cmd.Flags().GetDuration("print-every")
	noDecay, _ := cmd.Flags().GetBool("no-decay")
	if printEvery <= 0 {
		printEvery = cfg.TickPeriod
	}

	api, err := newAPI()
	if err != nil {
		exitErr("api", err)
	}
	log := newLogger()
	session := client.NewSession(api, log)

	runner := client.NewRunner(session, client.RunnerConfig{
		TickPeriod:      cfg.TickPeriod,
		StatePollPeriod: cfg.StatePollPeriod,
		FeedPollPeriod:  cfg.FeedPollPeriod,
	}, log)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if noDecay {
		if err := runner.State.Start(ctx); err != nil {
			exitErr("start", err)
		}
		defer runner.State.Stop()
		if err := runner.Feed.Start(ctx); err != nil {
			exitErr("start", err)
		}
		defer runner.Feed.Stop()
	} else {
		if err := runner.Start(ctx); err != nil {
			exitErr("start", err)
		}
		defer runner.Stop()
	}

	ticker := time.NewTicker(printEvery)
	defer ticker.Stop()

	out := cmd.OutOrStdout()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			printView(out, session.View())
		}
	}
}

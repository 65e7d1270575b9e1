package cli

import (
	"fmt"
	"io"
	"strings"

	"community-pet/internal/client"
)

func printView(w io.Writer, v client.View) {
	printOut(w, v, func(w io.Writer) {
		s := v.Stats
		fmt.Fprintf(w, "state=%s alive=%t age=%.1fm\n", v.Condition, v.Alive, s.Age)
		fmt.Fprintf(w, "  health=%.1f hunger=%.1f cleanliness=%.1f energy=%.1f happiness=%.1f\n",
			s.Health, s.Hunger, s.Cleanliness, s.Energy, s.Happiness)
		if len(v.Urgencies) > 0 {
			fmt.Fprintf(w, "  URGENT: %s!\n", strings.Join(v.Urgencies, ", "))
		}
		if v.LastActionBy != "" {
			fmt.Fprintf(w, "  last action by %s\n", v.LastActionBy)
		}
		if v.Message != "" {
			fmt.Fprintf(w, "  %s\n", v.Message)
		}
	})
}

func printFeed(w io.Writer, page client.FeedPage) {
	printOut(w, page, func(w io.Writer) {
		fmt.Fprintf(w, "%d community actions\n", page.TotalActions)
		for _, e := range page.Actions {
			fmt.Fprintf(w, "  %s u/%s %s\n", e.Timestamp.Local().Format("15:04:05"), e.Username, e.Message)
		}
	})
}

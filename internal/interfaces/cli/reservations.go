package cli

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/spf13/cobra"

	"github.com/example/room-schedule/internal/application/usecases"
	"github.com/example/room-schedule/internal/domain/reservation"
)

const timeLayout = "3:04 PM"

func newReservationsCmd(a *app) *cobra.Command {
	var f scheduleFlags
	cmd := &cobra.Command{
		Use:     "reservations",
		Aliases: []string{"ls"},
		Short:   "List reservations grouped by room",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cfg, err := loadSchedule(cmd, a, &f)
			if err != nil {
				return err
			}
			printSchedule(cmd.OutOrStdout(), s, cfg.Location)
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

func printSchedule(w io.Writer, s usecases.Schedule, loc *time.Location) {
	if len(s.Groups) == 0 {
		fmt.Fprintln(w, "No reservations found.")
		return
	}
	for i, g := range s.Groups {
		if i > 0 {
			fmt.Fprintln(w)
		}
		marker := ""
		if s.Conflicts[g.Room.ID] {
			marker = "  [overlapping bookings]"
		}
		fmt.Fprintf(w, "%s (%d)%s\n", g.Room.Name, len(g.Reservations), marker)
		for _, r := range g.Reservations {
			fmt.Fprintf(w, "  %s  %s - %s  %dm  %s\n",
				r.Start.In(loc).Format(reservation.DayLayout),
				r.Start.In(loc).Format(timeLayout),
				r.End.In(loc).Format(timeLayout),
				int(math.Round(r.Duration().Minutes())),
				r.ID,
			)
		}
	}
}

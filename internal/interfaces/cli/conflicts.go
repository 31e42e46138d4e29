package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/room-schedule/internal/domain/reservation"
)

func newConflictsCmd(a *app) *cobra.Command {
	var f scheduleFlags
	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report rooms with overlapping reservations; exits non-zero if any",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := loadSchedule(cmd, a, &f)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, g := range s.Groups {
				status := "ok"
				if s.Conflicts[g.Room.ID] {
					status = "conflict"
				}
				fmt.Fprintf(out, "%s\t%s\n", g.Room.Name, status)
				for _, p := range reservation.OverlappingPairs(g.Reservations) {
					fmt.Fprintf(out, "  %s overlaps %s\n", p.First.ID, p.Second.ID)
				}
			}
			if s.HasConflicts() {
				return errConflicts
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

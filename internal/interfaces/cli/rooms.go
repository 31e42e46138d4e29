package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRoomsCmd(a *app) *cobra.Command {
	var f scheduleFlags
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List every room present in the reservation data",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.allDates = true
			s, _, err := loadSchedule(cmd, a, &f)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, r := range s.Rooms {
				fmt.Fprintf(tw, "%s\t%s\n", r.ID, r.Name)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "bypass the response cache")
	return cmd
}

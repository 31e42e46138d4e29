package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
	BuildDate = "unknown"
)

func NewRoot() *cobra.Command {
	return newRoot(defaultApp())
}

func newRoot(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "roomsched",
		Short:         "Browse room reservations by day and room",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServerCmd(a))
	root.AddCommand(newReservationsCmd(a))
	root.AddCommand(newRoomsCmd(a))
	root.AddCommand(newConflictsCmd(a))
	root.AddCommand(newPingCmd(a))
	root.AddCommand(newCacheCmd(a))
	root.AddCommand(newKeysCmd())
	root.AddCommand(newVersionCmd())

	return root
}

func Execute() {
	if err := NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

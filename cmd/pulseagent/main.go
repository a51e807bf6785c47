// pulseagent watches the screen for a pause in user activity, asks a
// vision model what to do next, and executes the resulting plan once a
// human approves it. See internal/pulse for the state machine driving the
// cycle.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var cfgFile string

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pulseagent",
		Short: "Watches for hesitation and proposes the next action",
		Long: `pulseagent captures the screen at a steady cadence, waits for the user
to pause, asks a vision model what they were probably about to do, and
waits for approval before carrying it out.`,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default ./pulseagent.yaml)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newApproveCmd())
	root.AddCommand(newDismissCmd())
	return root
}

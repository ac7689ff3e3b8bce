package main

import (
	goflag "flag"
	"fmt"
	"os"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/bobonovski/ldagibbs/cmd"
)

// newRootCmd builds the command tree. Errors are left to the caller, which
// prints them once.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ldagibbs",
		Short:         "Topic models estimated with collapsed Gibbs sampling",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// glog reads its flags from the standard flag set
			goflag.CommandLine.Parse(nil)
		},
	}
	rootCmd.PersistentFlags().AddGoFlagSet(goflag.CommandLine)

	rootCmd.AddCommand(
		cmd.TrainCmd(),
		cmd.ResumeCmd(),
		cmd.InferCmd(),
		cmd.SimilarCmd(),
	)
	return rootCmd
}

func main() {
	goflag.Set("logtostderr", "true")

	err := newRootCmd().Execute()
	log.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bobonovski/ldagibbs/store"
)

func ResumeCmd() *cobra.Command {
	var (
		checkpoint string
		dictFile   string
		out        string
		iter       int
		every      int
	)
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Continue sampling from a checkpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.LoadCheckpoint(checkpoint)
			if err != nil {
				return err
			}
			m, err := c.Model()
			if err != nil {
				return err
			}
			dict, err := loadDictionary(dictFile)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return train(ctx, m, iter, dict, out, checkpoint, every)
		},
	}

	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "checkpoint to continue from, it is overwritten")
	cmd.Flags().StringVar(&dictFile, "dict", "", "reverse dictionary as a JSON object of id to word")
	cmd.Flags().StringVar(&out, "out", "", "prefix of the output files")
	cmd.Flags().IntVar(&iter, "iter", 100, "number of additional sweeps")
	cmd.Flags().IntVar(&every, "checkpoint-every", 0, "also write the checkpoint every n sweeps")
	cmd.MarkFlagRequired("checkpoint")
	return cmd
}

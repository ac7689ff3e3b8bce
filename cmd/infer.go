package cmd

import (
	"io"

	log "github.com/golang/glog"
	"github.com/spf13/cobra"

	"github.com/bobonovski/ldagibbs/corpus"
	"github.com/bobonovski/ldagibbs/report"
	"github.com/bobonovski/ldagibbs/store"
)

func InferCmd() *cobra.Command {
	var (
		checkpoint string
		corpusFile string
		out        string
		iter       int
	)
	cmd := &cobra.Command{
		Use:   "infer",
		Short: "Estimate topic mixtures of new documents with a trained model",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.LoadCheckpoint(checkpoint)
			if err != nil {
				return err
			}
			m, err := c.Model()
			if err != nil {
				return err
			}
			docs, err := corpus.LoadFile(corpusFile)
			if err != nil {
				return err
			}

			encoded, dropped := m.Corpus().Encode(docs.Originals())
			if dropped > 0 {
				log.Warningf("dropped %d words unknown to the trained vocabulary", dropped)
			}
			theta, err := m.Infer(encoded, iter)
			if err != nil {
				return err
			}

			if err := store.WriteFloat64RowsFile(out+".theta", theta); err != nil {
				return err
			}
			return store.WriteFile(out+".report.txt", func(w io.Writer) error {
				return report.WriteTheta(w, theta)
			})
		},
	}

	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "checkpoint of a trained model")
	cmd.Flags().StringVar(&corpusFile, "corpus", "", "integer encoded documents to fold in")
	cmd.Flags().StringVar(&out, "out", "", "prefix of the output files")
	cmd.Flags().IntVar(&iter, "iter", 50, "number of sweeps over the new documents")
	cmd.MarkFlagRequired("checkpoint")
	cmd.MarkFlagRequired("corpus")
	cmd.MarkFlagRequired("out")
	return cmd
}

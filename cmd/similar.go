package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/bobonovski/ldagibbs/report"
	"github.com/bobonovski/ldagibbs/store"
)

func SimilarCmd() *cobra.Command {
	var (
		checkpoint string
		thetaFile  string
		doc        int
		k          int
		seed       int64
	)
	cmd := &cobra.Command{
		Use:   "similar",
		Short: "List the documents whose topic mixture is closest to a document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var theta [][]float64
			switch {
			case thetaFile != "":
				rows, err := store.ReadFloat64RowsFile(thetaFile)
				if err != nil {
					return err
				}
				theta = rows
			case checkpoint != "":
				c, err := store.LoadCheckpoint(checkpoint)
				if err != nil {
					return err
				}
				m, err := c.Model()
				if err != nil {
					return err
				}
				theta = m.Theta()
			default:
				return errors.New("one of --theta or --checkpoint is required")
			}

			neighbors, err := report.NewSimilarity(theta, seed).Similar(doc, k)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range neighbors {
				fmt.Fprintf(out, "%d\t%.6f\n", n.Doc, n.Similarity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&checkpoint, "checkpoint", "", "checkpoint of a trained model")
	cmd.Flags().StringVar(&thetaFile, "theta", "", "document-topic file written by train")
	cmd.Flags().IntVar(&doc, "doc", 0, "query document")
	cmd.Flags().IntVar(&k, "k", 5, "number of neighbours")
	cmd.Flags().Int64Var(&seed, "seed", 1, "seed of the search graph")
	return cmd
}

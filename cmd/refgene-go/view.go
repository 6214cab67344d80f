package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/inodb/refgene-go/internal/refgene"
)

func newViewCmd() *cobra.Command {
	var coding bool

	cmd := &cobra.Command{
		Use:   "view <file>",
		Short: "Stream transcripts as BED6 lines",
		Example: `  # All transcript spans
  refgene-go view refGene.txt.gz

  # CDS-clipped coding intervals only
  refgene-go view --coding refGene.txt.gz`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("coding") {
				coding = viper.GetBool("view.coding")
			}
			return runView(cmd.OutOrStdout(), args[0], coding)
		},
	}

	cmd.Flags().BoolVar(&coding, "coding", false, "Emit coding intervals instead of transcript spans")

	return cmd
}

func runView(w io.Writer, path string, coding bool) error {
	logger := buildLogger()
	defer logger.Sync()

	r := refgene.NewReader(path)
	r.SetLogger(logger)

	cur, err := r.Transcripts()
	if err != nil {
		return err
	}
	defer cur.Close()

	for {
		t, err := cur.Next()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}

		if !coding {
			fmt.Fprintln(w, t.BED())
			continue
		}
		regions, err := t.CodingIntervals()
		if err != nil {
			return fmt.Errorf("derive coding intervals for %s: %w", t.Accession, err)
		}
		for _, cr := range regions {
			fmt.Fprintln(w, cr.BED())
		}
	}

	if n := cur.Dropped(); n > 0 {
		logger.Warn("traversal dropped incomplete exon records", zap.Int("count", n))
	}
	return nil
}

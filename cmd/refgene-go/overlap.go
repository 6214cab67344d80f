package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/inodb/refgene-go/internal/refgene"
)

func newOverlapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "overlap <file> <chrom> <pos>",
		Short: "Find transcripts covering a genomic position",
		Example: `  refgene-go overlap refGene.txt.gz chr1 150`,
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			pos, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid position %q", args[2])
			}
			return runOverlap(cmd.OutOrStdout(), args[0], args[1], pos)
		},
	}
}

func runOverlap(w io.Writer, path, chrom string, pos int64) error {
	logger := buildLogger()
	defer logger.Sync()

	r := refgene.NewReader(path)
	r.SetLogger(logger)

	idx := refgene.NewIndex()
	if err := idx.ReadAll(r); err != nil {
		return err
	}

	for _, t := range idx.FindTranscripts(chrom, pos) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.Accession, t.Name, t.Locus(), t.Strand)
	}
	return nil
}

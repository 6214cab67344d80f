package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/inodb/refgene-go/internal/refgene"
)

func newLookupCmd() *cobra.Command {
	var accession, name string

	cmd := &cobra.Command{
		Use:   "lookup <file>",
		Short: "Find transcripts by accession or gene name pattern",
		Long: `Find transcripts whose accession or gene name starts with a match of the
given pattern. Patterns are regular expressions, compiled case-insensitive
and anchored at the start only: --accession NM_001 matches both NM_001 and
NM_0012. Anchor the end yourself (NM_001$) for an exact match.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (accession == "") == (name == "") {
				return fmt.Errorf("exactly one of --accession or --name is required")
			}
			return runLookup(cmd.OutOrStdout(), args[0], accession, name)
		},
	}

	cmd.Flags().StringVar(&accession, "accession", "", "Accession pattern (e.g. NM_001)")
	cmd.Flags().StringVar(&name, "name", "", "Gene name pattern (e.g. TP53)")

	return cmd
}

func runLookup(w io.Writer, path, accession, name string) error {
	logger := buildLogger()
	defer logger.Sync()

	r := refgene.NewReader(path)
	r.SetLogger(logger)

	var (
		cur *refgene.Cursor
		err error
	)
	if accession != "" {
		cur, err = r.TranscriptsByAccession(accession)
	} else {
		cur, err = r.TranscriptsByName(name)
	}
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
			return nil
		}

		codingLength, err := t.CodingLength()
		if err != nil {
			return fmt.Errorf("derive coding length for %s: %w", t.Accession, err)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\n",
			t.Accession, t.Name, t.Locus(), t.Strand, t.NumExons(), codingLength)
	}
}

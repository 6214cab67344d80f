package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inodb/refgene-go/internal/refgene"
	"github.com/inodb/refgene-go/internal/store"
)

func newConvertCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a refGene table to a DuckDB database",
		Long: `Parse a refGene table and persist its transcripts and exons in a DuckDB
database for fast downstream queries.`,
		Example: `  refgene-go convert refGene.txt.gz --output refgene.duckdb`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputPath == "" {
				return fmt.Errorf("--output is required")
			}
			return runConvert(args[0], outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output DuckDB file path")

	return cmd
}

func runConvert(inputPath, outputPath string) error {
	logger := buildLogger()
	defer logger.Sync()

	if ext := filepath.Ext(outputPath); ext != ".duckdb" && ext != ".db" {
		outputPath += ".duckdb"
	}
	if _, err := os.Stat(outputPath); err == nil {
		if err := os.Remove(outputPath); err != nil {
			return fmt.Errorf("remove existing database: %w", err)
		}
	}

	db, err := store.Open(outputPath)
	if err != nil {
		return err
	}
	defer db.Close()

	r := refgene.NewReader(inputPath)
	r.SetLogger(logger)

	cur, err := r.Transcripts()
	if err != nil {
		return err
	}
	defer cur.Close()

	inserted := 0
	for {
		t, err := cur.Next()
		if err != nil {
			return err
		}
		if t == nil {
			break
		}
		if err := db.InsertTranscript(t); err != nil {
			return err
		}
		inserted++
		if inserted%10000 == 0 {
			logger.Info("converting", zap.Int("transcripts", inserted))
		}
	}

	fmt.Fprintf(os.Stderr, "Wrote %d transcripts to %s\n", inserted, outputPath)
	if n := cur.Dropped(); n > 0 {
		fmt.Fprintf(os.Stderr, "Dropped %d incomplete exon records\n", n)
	}
	return nil
}

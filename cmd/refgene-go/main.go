// Package main provides the refgene-go command-line tool.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var verbose bool

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refgene-go",
		Short: "Query UCSC refGene annotation tables",
		Long: `refgene-go parses UCSC refGene flat files into transcripts, exons and
derived protein-coding intervals. Sources may be local files, gzipped
files, "-" for stdin, or http(s) URLs.`,
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initConfig()
			if !cmd.Flags().Changed("verbose") {
				verbose = viper.GetBool("verbose")
			}
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log traversal diagnostics to stderr")

	cmd.AddCommand(newViewCmd())
	cmd.AddCommand(newLookupCmd())
	cmd.AddCommand(newOverlapCmd())
	cmd.AddCommand(newConvertCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	viper.SetConfigFile(filepath.Join(home, ".refgene-go.yaml"))
	viper.SetConfigType("yaml")
	// A missing config file is fine; flags and defaults apply.
	_ = viper.ReadInConfig()
}

func buildLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

package cmd

import (
	"fmt"
	"io"
	"sort"

	"db-compare/internal/source"

	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of both databases",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig()
		if err != nil {
			return err
		}
		return runTables(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	RootCmd.AddCommand(tablesCmd)
}

func runTables(out io.Writer, cfg *Config) error {
	left, err := source.New(cfg.Source1, logger).ListTables()
	if err != nil {
		return err
	}
	right, err := source.New(cfg.Source2, logger).ListTables()
	if err != nil {
		return err
	}

	where := make(map[string]int)
	for _, t := range left {
		where[t] |= 1
	}
	for _, t := range right {
		where[t] |= 2
	}
	names := make([]string, 0, len(where))
	for t := range where {
		names = append(names, t)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "🔍 Source 1: %s\n", cfg.Source1)
	fmt.Fprintf(out, "🔍 Source 2: %s\n", cfg.Source2)
	for i, t := range names {
		status := "both"
		switch where[t] {
		case 1:
			status = "only source 1"
		case 2:
			status = "only source 2"
		}
		fmt.Fprintf(out, "[%02d] %-30s : %s\n", i+1, t, status)
	}
	return nil
}

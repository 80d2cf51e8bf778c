package cmd

import (
	"errors"
	"fmt"
	"io"
	"time"

	"db-compare/internal/engine"
	"db-compare/internal/report"
	"db-compare/internal/source"

	"github.com/fatih/color"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var noProgress bool

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare a table across both databases and write an xlsx report",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(compareKeys...)
		if err != nil {
			return err
		}
		return runCompare(cmd.OutOrStdout(), cfg, !noProgress)
	},
}

func init() {
	RootCmd.AddCommand(compareCmd)

	// CLI Flags
	compareCmd.Flags().String("prefix1", "", "column label for source 1 values")
	compareCmd.Flags().String("prefix2", "", "column label for source 2 values")
	compareCmd.Flags().StringP("output", "o", "", "output xlsx path (overwritten if it exists)")
	compareCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Do not render a progress bar")

	viper.BindPFlag(KeyCol1Prefix, compareCmd.Flags().Lookup("prefix1"))
	viper.BindPFlag(KeyCol2Prefix, compareCmd.Flags().Lookup("prefix2"))
	viper.BindPFlag(KeyOutputPath, compareCmd.Flags().Lookup("output"))
}

// runCompare reads both snapshots, compares them, writes and styles the report and
// prints the summary to out.
func runCompare(out io.Writer, cfg *Config, showProgress bool) error {
	start := time.Now()

	// 1. Snapshots
	left, err := source.New(cfg.Source1, logger).ReadAll(cfg.Table)
	if err != nil {
		return err
	}
	right, err := source.New(cfg.Source2, logger).ReadAll(cfg.Table)
	if err != nil {
		return err
	}

	// 2. Compare
	var onRow func()
	stopProgress := func() {}
	if showProgress && left.Len() > 0 {
		p := uiprogress.New()
		p.SetOut(out)
		bar := p.AddBar(left.Len()).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Comparing: "
		})
		p.Start()
		stopProgress = p.Stop
		onRow = func() { bar.Incr() }
	}

	result, err := engine.Compare(left, right, onRow)
	stopProgress()
	if err != nil {
		return err
	}
	logger.Info("rows matched", "table", result.Table, "left", result.LeftRows, "right", result.RightRows, "pairs", result.Pairs)

	overall, overallErr := result.Overall()
	if errors.Is(overallErr, engine.ErrEmptyMatchSet) {
		logger.Info("warning: nothing to compare, reporting 0%", "table", result.Table, "pairs", result.Pairs)
	}

	// 3. Report: data first, styling second
	table := report.Build(result.Key, result.Columns(), cfg.Labels, result.Records(), result.Summary())
	if err := report.Write(table, cfg.OutputPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	stats, styleErr := report.Style(cfg.OutputPath)
	if styleErr == nil {
		logger.V(1).Info("report styled", "matched", stats.Matched, "mismatched", stats.Mismatched)
	}

	printSummary(out, result, overall, overallErr, cfg.OutputPath)
	logger.Info("comparison done", "elapsed", time.Since(start).String())

	if styleErr != nil {
		fmt.Fprintf(out, "⚠ Report data was saved without highlighting: %v\n", styleErr)
		return styleErr
	}
	return nil
}

func printSummary(out io.Writer, result *engine.Result, overall float64, overallErr error, path string) {
	c := color.New(color.FgYellow)
	switch {
	case overallErr != nil:
		c = color.New(color.FgRed)
	case overall == 100:
		c = color.New(color.FgGreen)
	}
	c.Fprintf(out, "Overall Matching Percentage: %.2f%%\n", overall)
	if overallErr != nil {
		fmt.Fprintf(out, "    └ %v\n", overallErr)
	}
	fmt.Fprintf(out, "Total Number of Compared Cells: %d\n", result.TotalCells())
	fmt.Fprintln(out, "Column Matching Percentages and Counts:")
	for _, s := range result.ColumnStats() {
		fmt.Fprintf(out, "%s: %.2f%% (Matched: %d out of %d)\n", s.Column, s.Percent, s.Matched, s.Total)
	}
	fmt.Fprintf(out, "Comparison result saved to: %s\n", path)
}

package cmd

import (
	"database/sql"
	"fmt"
	"io"
	"time"

	"db-compare/internal/dialect"
	"db-compare/internal/engine"
	"db-compare/internal/source"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	seedClean bool
	seedValue int64
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Fill the table in both databases with comparable fake data",
	Long: `Creates the configured table in both databases when missing and inserts the same
generated rows into each. A share of cells (--drift) is altered in source 2 so that a
following compare run has differences to report.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(KeyTableName)
		if err != nil {
			return err
		}
		opts := engine.SeedOptions{
			Table: cfg.Table,
			Count: viper.GetInt("seed.count"),
			Drift: viper.GetFloat64("seed.drift"),
			Clean: seedClean,
			Seed:  seedValue,
		}
		return runSeed(cmd.OutOrStdout(), cfg, opts, true)
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	// CLI Flags
	seedCmd.Flags().Int("count", 0, "Number of rows to generate (overrides config)")
	seedCmd.Flags().Float64("drift", 0, "Share of source 2 cells to alter, 0..1 (overrides config)")
	seedCmd.Flags().BoolVar(&seedClean, "clean", false, "Clean the table before filling")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (0 = time based)")

	viper.BindPFlag("seed.count", seedCmd.Flags().Lookup("count"))
	viper.BindPFlag("seed.drift", seedCmd.Flags().Lookup("drift"))
	viper.SetDefault("seed.count", 100)
	viper.SetDefault("seed.drift", 0.1)
}

func openTarget(name string, loc source.Location) (engine.SeedTarget, *sql.DB, error) {
	db, err := sql.Open(loc.Driver, loc.DSN)
	if err != nil {
		return engine.SeedTarget{}, nil, fmt.Errorf("failed to open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return engine.SeedTarget{}, nil, fmt.Errorf("failed to connect to db: %w", err)
	}
	logger.Info("connected", "source", name, "driver", loc.Driver, "location", loc.String())
	return engine.SeedTarget{Name: name, DB: db, Dialect: dialect.GetDialect(loc.Driver)}, db, nil
}

func runSeed(out io.Writer, cfg *Config, opts engine.SeedOptions, showProgress bool) error {
	left, db1, err := openTarget("source 1", cfg.Source1)
	if err != nil {
		return err
	}
	defer db1.Close()
	right, db2, err := openTarget("source 2", cfg.Source2)
	if err != nil {
		return err
	}
	defer db2.Close()

	logger.Info("starting seed", "table", opts.Table, "count", opts.Count, "drift", opts.Drift)
	start := time.Now()

	var onProgress func()
	stopProgress := func() {}
	if showProgress && opts.Count > 0 {
		p := uiprogress.New()
		p.SetOut(out)
		bar := p.AddBar(opts.Count * 2).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Seeding: "
		})
		p.Start()
		stopProgress = p.Stop
		onProgress = func() { bar.Incr() }
	}

	results, err := engine.Seed(left, right, opts, onProgress)
	stopProgress()
	if err != nil {
		return err
	}

	printSeedReport(out, results)
	logger.Info("seed done", "elapsed", time.Since(start).String())
	return nil
}

func printSeedReport(out io.Writer, results []engine.SeedResult) {
	fmt.Fprintln(out, "\n📊 Seed Report:")
	for i, r := range results {
		icon := "✓"
		if r.Status != "OK" {
			icon = "!"
		}
		created := ""
		if r.Created {
			created = " (table created)"
		}
		fmt.Fprintf(out, "[%s] [%02d/%02d] %-10s : %d rows (Target: %d), %d drifted cells - %s%s\n",
			icon, i+1, len(results), r.Database, r.Actual, r.Target, r.Drifted, r.Status, created)
		if r.ErrorMsg != "" {
			fmt.Fprintf(out, "    └ Error: %s\n", r.ErrorMsg)
		}
	}
}

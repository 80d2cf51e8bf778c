package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	configErr error // deferred from initConfig, reported by PersistentPreRunE

	logger     = logr.Discard()
	logCleanup func()
)

var RootCmd = &cobra.Command{
	Use:   "db-compare",
	Short: "Compare a table across two databases",
	Long: `
  ____  ____     ____ ___  __  __ ____   _    ____  _____
 |  _ \| __ )   / ___/ _ \|  \/  |  _ \ / \  |  _ \| ____|
 | | | |  _ \  | |  | | | | |\/| | |_) / _ \ | |_) |  _|
 | |_| | |_) | | |__| |_| | |  | |  __/ ___ \|  _ <| |___
 |____/|____/   \____\___/|_|  |_|_| /_/   \_\_| \_\_____|

DB COMPARE 🔍 - Table Reconciliation Report Generator
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configErr != nil {
			return configErr
		}
		cleanup, err := setupLogger(cmd)
		if err != nil {
			return err
		}
		logCleanup = cleanup
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Info("using config file", "path", used)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			logCleanup()
			logCleanup = nil
		}
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Define flags
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.ini or ./db-compare.yaml)")
	flags.String("db1", "", "source 1 database location (file path or URL)")
	flags.String("db2", "", "source 2 database location (file path or URL)")
	flags.String("db1-driver", "", "override the driver detected for source 1")
	flags.String("db2-driver", "", "override the driver detected for source 2")
	flags.String("table", "", "table to compare")
	AddLoggerFlags(flags)

	// Bind flags to viper (Flag > Env > Config)
	viper.BindPFlag(KeyDB1Path, flags.Lookup("db1"))
	viper.BindPFlag(KeyDB2Path, flags.Lookup("db2"))
	viper.BindPFlag(KeyDB1Driver, flags.Lookup("db1-driver"))
	viper.BindPFlag(KeyDB2Driver, flags.Lookup("db2-driver"))
	viper.BindPFlag(KeyTableName, flags.Lookup("table"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	viper.SetEnvPrefix("DB_COMPARE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if cfgFile != "" {
		// Use config file from the flag.
		configErr = readConfigFile(cfgFile)
		return
	}

	var dirs []string
	// 1. Executable Directory (Priority 1)
	if ex, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(ex))
	}
	// 2. Current Directory (Priority 2)
	dirs = append(dirs, ".")

	for _, dir := range dirs {
		for _, name := range []string{"config.ini", "db-compare.yaml"} {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				configErr = readConfigFile(path)
				return
			}
		}
	}
}

// readConfigFile loads path into viper. Sectioned .ini files go through ini.v1;
// everything else is left to viper.
func readConfigFile(path string) error {
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		values, err := loadINI(path)
		if err != nil {
			return err
		}
		viper.SetConfigFile(path)
		return viper.MergeConfigMap(values)
	}
	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

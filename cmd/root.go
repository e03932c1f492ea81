/*
Copyright © 2025 The capexdb Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/odysseus-imc/capexdb/internal/iofs"
	"github.com/odysseus-imc/capexdb/internal/iologger"
	app "github.com/odysseus-imc/capexdb/pkg"
	"github.com/odysseus-imc/capexdb/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Every call builds a new tree, so tests do not share flag state.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "capexdb",
		Short:   "CAPEX planning database: reconcile, score and rank projects",
		Long: `capexdb keeps the capital expenditure plan of an irrigation network
in one database (SQLite file by default, PostgreSQL optionally).

Features:
  - Schema Management: create and migrate the planning database
  - Bulk Import: load assets and projects from CSV spreadsheets
  - Priority Scoring: weighted criteria, totals and project ranks
  - Risk Rating: consequence and likelihood assessments
  - Status History: append-only lifecycle of every project
  - Budgets and Reports: multi-year costs and portfolio dashboard

Configuration is read from ~/.config/capexdb/config.yaml and
CAPEXDB_* environment variables.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "capexdb version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for capexdb")

	rootCmd.AddCommand(
		getCreateCmd(),
		getMigrateCmd(),
		getImportCmd(),
		getProjectCmd(),
		getCriteriaCmd(),
		getRiskCmd(),
		getStatusCmd(),
		getCostCmd(),
		getRefCmd(),
		getReportCmd(),
		getCheckCmd(),
	)

	return rootCmd
}

// envKeys are the config keys that CAPEXDB_* variables may set. They
// match the persistent fields of config.ToOptions.
var envKeys = []string{
	"database.driver",
	"database.path",
	"database.host",
	"database.port",
	"database.user",
	"database.password",
	"database.database",
	"database.ssl_mode",
	"import.show_progress",
	"log.level",
	"log.format",
	"log.destination",
	"jobs_number",
}

// bootstrap prepares directories, logging and configuration before any
// subcommand runs.
func bootstrap(cmd *cobra.Command, _ []string) error {
	err := setup()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)
	return nil
}

func setup() error {
	var err error
	if homeDir, err = os.UserHomeDir(); err != nil {
		return err
	}
	logDir := config.LogDir(homeDir)

	if err = iofs.EnsureDirs(homeDir); err != nil {
		return err
	}
	// log to file with defaults until config.yaml is read
	if err = iologger.Init(logDir, config.New().Log, true); err != nil {
		return err
	}
	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		return err
	}

	fileCfg, err := readConfig(config.ConfigFilePath(homeDir))
	if err != nil {
		return err
	}

	opts := append(fileCfg.ToOptions(), config.OptHomeDir(homeDir))
	cfg = config.New()
	cfg.Update(opts)
	if cfg.Database.Driver == "sqlite" && cfg.Database.Path == "" {
		cfg.Update([]config.Option{config.OptDatabasePath(cfg.SQLitePath())})
	}

	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute runs the command tree. It is called by main.main().
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// readConfig loads path and overlays CAPEXDB_* environment variables.
func readConfig(path string) (*config.Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("CAPEXDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range envKeys {
		_ = v.BindEnv(key)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	var res config.Config
	if err := v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	return &res, nil
}

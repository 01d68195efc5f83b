package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vvka-141/projdb/internal/checksum"
	"github.com/vvka-141/projdb/internal/config"
	"github.com/vvka-141/projdb/internal/files/filesystem"
	"github.com/vvka-141/projdb/internal/logging"
	"github.com/vvka-141/projdb/internal/services"
	"github.com/vvka-141/projdb/pkg/projdb"
)

var buildCmd = &cobra.Command{
	Use:   "build [source_dir]",
	Short: "Build the proj.db SQL fixtures from an EPSG registry dump",
	Long: `Build ingests the EPSG registry PostgreSQL dump scripts and writes one
generated SQL fixture file per populated destination table.

The build command:
1. Loads ` + projdb.TableScriptFile + ` and ` + projdb.DataScriptFile + `
   from the source directory into a temporary store
2. Populates the proj.db schema (` + projdb.SchemaDefFile + `) from the
   attached source store, validating registry invariants
3. Dumps every populated destination table to <sql_dir>/<table>.sql

Arguments:
  source_dir    Directory containing the registry dump scripts
                (default: current directory)

Configuration precedence: flags > environment (PROJDB_SQL_DIR,
PROJDB_KEEP_TEMP) > ` + config.ConfigFileName + ` in the source directory > defaults.

Examples:
  # Build from the current directory into data/sql
  projdb build

  # Build a downloaded registry snapshot into a staging directory
  projdb build ./epsg-v9.2 --sql-dir ./staging/sql

  # Keep the temporary source store for inspection
  projdb build --keep-temp -v`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

type buildFlagValues struct {
	sqlDir   string
	keepTemp bool
}

var buildFlags buildFlagValues

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().StringVar(&buildFlags.sqlDir, "sql-dir", "",
		"Directory holding "+projdb.SchemaDefFile+" and receiving the generated files\n"+
			"Precedence: --sql-dir > $PROJDB_SQL_DIR > "+config.ConfigFileName+" > "+projdb.DefaultSQLDir)
	buildCmd.Flags().BoolVar(&buildFlags.keepTemp, "keep-temp", false,
		"Keep the temporary source store file after the run (its path is logged)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	// Load .env if present; real environment variables win.
	_ = godotenv.Load()

	sourceDir := "."
	if len(args) == 1 {
		sourceDir = args[0]
	}

	buildConfig, err := resolveBuildConfig(cmd, sourceDir)
	if err != nil {
		return err
	}

	logger := logging.NewConsoleLogger(buildConfig.Verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := services.NewBuildService(filesystem.NewOSFileSystem(), checksum.New(), logger)
	if err := svc.Build(ctx, buildConfig); err != nil {
		logger.Error("build failed: %v", err)
		return err
	}
	return nil
}

// resolveBuildConfig layers flag, environment and project-file settings.
func resolveBuildConfig(cmd *cobra.Command, sourceDir string) (projdb.BuildConfig, error) {
	cfg := projdb.BuildConfig{
		SourceDir: sourceDir,
		SQLDir:    projdb.DefaultSQLDir,
		Verbose:   getVerboseFlag(cmd),
	}

	fileCfg, err := config.Load(sourceDir)
	if err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return projdb.BuildConfig{}, err
	}
	if fileCfg != nil {
		if fileCfg.SQLDir != "" {
			cfg.SQLDir = fileCfg.SQLDir
		}
		if fileCfg.KeepTemp {
			cfg.KeepTemp = true
		}
	}

	if env := os.Getenv("PROJDB_SQL_DIR"); env != "" {
		cfg.SQLDir = env
	}
	if env := os.Getenv("PROJDB_KEEP_TEMP"); env != "" {
		if keep, err := strconv.ParseBool(env); err == nil {
			cfg.KeepTemp = keep
		}
	}

	if cmd.Flags().Changed("sql-dir") {
		cfg.SQLDir = buildFlags.sqlDir
	}
	if cmd.Flags().Changed("keep-temp") {
		cfg.KeepTemp = buildFlags.keepTemp
	}

	return cfg, nil
}

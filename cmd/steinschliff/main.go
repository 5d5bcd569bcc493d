package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"steinschliff/internal/conditions"
	"steinschliff/internal/config"
	"steinschliff/internal/loader"
	"steinschliff/internal/logger"
	"steinschliff/internal/model"
	"steinschliff/internal/pipeline"
	"steinschliff/internal/ui"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	flagConfig   string
	flagLogLevel string
	flagRoot     string
)

// cfg is the resolved configuration for the running command.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "steinschliff",
	Short: "Catalog generator for ski grinding structures",
	Long: `steinschliff reads YAML descriptions of stone grinding structures
(one file per structure, one directory per vendor) and renders the
bilingual README catalog, JSON and CSV exports and condition statistics.

Without a subcommand it runs "generate".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runGenerate,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "config file (default <root>/steinschliff.toml)")
	pf.StringVar(&flagLogLevel, "log-level", "", "DEBUG, INFO, WARNING or ERROR (overrides config)")
	pf.StringVar(&flagRoot, "root", ".", "project root")
	addGenerateFlags(rootCmd)
}

// setup loads configuration and applies the log level before any command.
func setup(cmd *cobra.Command, _ []string) error {
	root, err := filepath.Abs(flagRoot)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	loaded, err := config.Load(root, flagConfig)
	if err != nil {
		return err
	}
	if flagLogLevel != "" {
		loaded.LogLevel = flagLogLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	cfg = loaded.Resolve(root)

	lvl, _ := logger.ParseLevel(cfg.LogLevel)
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetLevel(lvl)
	logger.Debug("project root %s", root)
	logger.Dump("config", cfg)
	return nil
}

// ---------------------------------------------------------------------------
// Shared loading
// ---------------------------------------------------------------------------

// catalogData is everything a command needs after the load step.
type catalogData struct {
	registry *conditions.Registry
	loaded   pipeline.Loaded
	metadata map[string]model.ServiceMetadata
	report   pipeline.MetaReport
}

// loadCatalog runs discovery, validation and assembly over cfg.SchliffsDir.
func loadCatalog() (*catalogData, error) {
	if info, err := os.Stat(cfg.SchliffsDir); err != nil || !info.IsDir() {
		return nil, model.NewUserError(model.ErrNotFound, "Каталог не найден",
			"директория с YAML-файлами %s не найдена", cfg.SchliffsDir)
	}

	reg, err := conditions.Load(cfg.ConditionsDir)
	if err != nil {
		return nil, fmt.Errorf("load snow conditions: %w", err)
	}
	logger.Debug("%d snow conditions from %s", reg.Len(), cfg.ConditionsDir)

	files, err := loader.FindYAMLFiles(cfg.SchliffsDir, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("discover YAML files: %w", err)
	}
	logger.Info("found %d YAML files in %s", len(files), cfg.SchliffsDir)

	loaded := pipeline.LoadStructures(files, cfg.SchliffsDir, reg)
	metadata, report := pipeline.LoadServiceMetadata(cfg.SchliffsDir, loaded.VendorOrder)
	return &catalogData{registry: reg, loaded: loaded, metadata: metadata, report: report}, nil
}

// printLoadSummary writes the validation and metadata panels to w.
func printLoadSummary(w io.Writer, c *catalogData) {
	if logger.GetLevel() > logger.LevelInfo {
		return
	}
	fmt.Fprintln(w, ui.ValidationSummary(c.loaded.Stats))
	if warn := ui.MetadataWarnings(c.report); warn != "" {
		fmt.Fprintln(w, warn)
	}
}

// sortField lowercases a --sort value and rejects unknown fields.
func sortField(field string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(field))
	if pipeline.ValidSortField(norm) {
		return norm, nil
	}
	return "", model.NewUserError(model.ErrInvalidInput, "Неверный параметр",
		"неизвестное поле сортировки %q", field)
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// ---------------------------------------------------------------------------
// Entry point
// ---------------------------------------------------------------------------

// run executes the CLI and returns the process exit code. User errors are
// shown as a panel; other errors are also logged.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var ue *model.UserError
	if !errors.As(err, &ue) {
		logger.Error("%v", err)
	}
	fmt.Fprintln(stderr, ui.ErrorPanel(err))
	return 1
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

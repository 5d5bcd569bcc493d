package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"steinschliff/internal/export"
	"steinschliff/internal/logger"
	"steinschliff/internal/pipeline"
	"steinschliff/internal/render"
	"steinschliff/internal/ui"
)

var (
	genSort     string
	genOutput   string
	genOutputRU string
	genJSONOut  string
	genWatch    bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate README (EN and RU) and export JSON",
	Long: `Render README_en.md and README.md from the YAML catalog and write the
JSON export used by the web app.

With --watch the catalog is regenerated whenever a YAML file under the
schliffs or snow conditions directory changes.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	rootCmd.AddCommand(generateCmd)
}

// addGenerateFlags registers the generate flags on cmd. The root command
// carries them too since it runs generate by default.
func addGenerateFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&genSort, "sort", "", "sort field: name, rating, country, temperature (default from config)")
	f.StringVar(&genOutput, "output", "", "English README path (default from config)")
	f.StringVar(&genOutputRU, "output-ru", "", "Russian README path (default from config)")
	f.StringVar(&genJSONOut, "json-out", "", "JSON export path (default from config)")
	f.BoolVar(&genWatch, "watch", false, "regenerate on changes until interrupted")
}

// generateOptions are the resolved generate settings.
type generateOptions struct {
	sort     string
	readme   string
	readmeRU string
	jsonOut  string
}

func resolveGenerateOptions() (generateOptions, error) {
	opts := generateOptions{
		readme:   firstNonEmpty(genOutput, cfg.Readme),
		readmeRU: firstNonEmpty(genOutputRU, cfg.ReadmeRU),
		jsonOut:  firstNonEmpty(genJSONOut, cfg.JSONOut),
	}
	var err error
	opts.sort, err = sortField(firstNonEmpty(genSort, cfg.Sort))
	return opts, err
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	opts, err := resolveGenerateOptions()
	if err != nil {
		return err
	}
	if err := generateOnce(cmd, opts); err != nil {
		return err
	}
	if !genWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	dirs := []string{cfg.SchliffsDir, cfg.ConditionsDir}
	logger.Info("watching %s for changes (Ctrl+C to stop)", cfg.SchliffsDir)
	return watch(ctx, dirs, watchDebounce, func() error {
		if err := generateOnce(cmd, opts); err != nil {
			// Errors are reported and watching continues.
			fmt.Fprintln(cmd.ErrOrStderr(), ui.ErrorPanel(err))
		}
		return nil
	})
}

// generateOnce runs the full pipeline and writes every output.
func generateOnce(cmd *cobra.Command, opts generateOptions) error {
	logger.Section("generate")
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	printLoadSummary(cmd.ErrOrStderr(), c)

	data := pipeline.PrepareCountries(c.loaded.Services, c.metadata)
	pipeline.SortCountries(data, opts.sort)

	bundle, err := render.Generate(data, opts.sort, render.DefaultLocales(opts.readme, opts.readmeRU), c.loaded.NameToPath)
	if err != nil {
		return fmt.Errorf("render README: %w", err)
	}
	if err := render.WriteBundle(bundle); err != nil {
		return err
	}

	records := export.BuildJSONRecords(c.loaded.Services, c.loaded.VendorOrder, c.metadata)
	if err := export.WriteJSON(opts.jsonOut, records); err != nil {
		return err
	}
	logger.Info("processed %d structures", c.loaded.Stats.ProcessedStructures)

	fmt.Fprintln(cmd.OutOrStdout(), ui.KVPanel("Готово", []ui.KV{
		{Key: "README EN", Value: opts.readme},
		{Key: "README RU", Value: opts.readmeRU},
		{Key: "JSON", Value: opts.jsonOut},
	}, ui.ColorOK))
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

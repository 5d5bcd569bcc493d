package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steinschliff/internal/pipeline"
	"steinschliff/internal/site"
	"steinschliff/internal/ui"
)

var (
	siteSort string
	siteDir  string
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Generate the Jekyll site in docs/",
	Long: `Render the catalog into a Jekyll site: index.md (RU) and en/index.md
(EN) with front matter, plus a minimal _config.yml, default layout and
stylesheet when they do not exist yet.`,
	Args: cobra.NoArgs,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().StringVar(&siteSort, "sort", "", "sort field (default from config)")
	siteCmd.Flags().StringVar(&siteDir, "dir", "", "site directory (default from config)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, _ []string) error {
	sortBy, err := sortField(firstNonEmpty(siteSort, cfg.Sort))
	if err != nil {
		return err
	}
	dir := firstNonEmpty(siteDir, cfg.SiteDir)

	c, err := loadCatalog()
	if err != nil {
		return err
	}
	printLoadSummary(cmd.ErrOrStderr(), c)

	data := pipeline.PrepareCountries(c.loaded.Services, c.metadata)
	pipeline.SortCountries(data, sortBy)
	pages, err := site.Build(dir, data, sortBy, c.loaded.NameToPath)
	if err != nil {
		return fmt.Errorf("build site: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.ItemsPanel("Сайт сгенерирован", pages, ui.ColorOK))
	return nil
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"steinschliff/internal/export"
	"steinschliff/internal/logger"
	"steinschliff/internal/ui"
)

var (
	csvSort      string
	csvService   string
	csvCondition string
	csvOutput    string
	csvQuiet     bool

	jsonSort string
	jsonOut  string
)

var exportCSVCmd = &cobra.Command{
	Use:   "export-csv",
	Short: "Export the structures table as CSV",
	Long: `Write one CSV row per structure with the same filters as "list".
Without -o the CSV goes to stdout and progress output is suppressed.`,
	Args: cobra.NoArgs,
	RunE: runExportCSV,
}

var exportJSONCmd = &cobra.Command{
	Use:   "export-json",
	Short: "Export structures as JSON for the web app",
	Args:  cobra.NoArgs,
	RunE:  runExportJSON,
}

func init() {
	f := exportCSVCmd.Flags()
	f.StringVar(&csvSort, "sort", "temperature", "sort field: name, rating, country, temperature")
	f.StringVarP(&csvService, "service", "s", "", "vendor filter")
	f.StringVarP(&csvCondition, "condition", "c", "", "snow condition filter")
	f.StringVarP(&csvOutput, "output", "o", "", "output CSV file (default stdout)")
	f.BoolVarP(&csvQuiet, "quiet", "q", false, "suppress progress output (implied when writing to stdout)")
	rootCmd.AddCommand(exportCSVCmd)

	jf := exportJSONCmd.Flags()
	jf.StringVar(&jsonSort, "sort", "", "sort field (accepted for compatibility; records follow vendor order)")
	jf.StringVar(&jsonOut, "out", "", "JSON output path (default from config)")
	rootCmd.AddCommand(exportJSONCmd)
}

func runExportCSV(cmd *cobra.Command, _ []string) error {
	field, err := sortField(csvSort)
	if err != nil {
		return err
	}
	quiet := csvQuiet || csvOutput == ""
	if quiet && logger.GetLevel() < logger.LevelWarn {
		logger.SetLevel(logger.LevelWarn)
	}

	sel, err := selectStructures(csvService, csvCondition)
	if err != nil {
		return err
	}
	if !quiet {
		printLoadSummary(cmd.ErrOrStderr(), sel.data)
	}
	if sel.empty {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Notice(fmt.Sprintf("Не найдено структур с условием '%s'", csvCondition)))
		return nil
	}

	opts := export.CSVOptions{
		VendorOrder: sel.data.loaded.VendorOrder,
		Metadata:    sel.data.metadata,
		Conditions:  sel.data.registry,
		SortField:   field,
	}
	if csvOutput == "" {
		return writeCSVTo(cmd.OutOrStdout(), sel, opts)
	}

	if err := os.MkdirAll(filepath.Dir(csvOutput), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(csvOutput), err)
	}
	f, err := os.Create(csvOutput)
	if err != nil {
		return fmt.Errorf("create %s: %w", csvOutput, err)
	}
	if err := writeCSVTo(f, sel, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", csvOutput, err)
	}
	if !quiet {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Panel("", "CSV экспортирован в "+csvOutput, ui.ColorOK))
	}
	return nil
}

func writeCSVTo(w io.Writer, sel *selection, opts export.CSVOptions) error {
	bw := bufio.NewWriter(w)
	if err := export.WriteCSV(bw, sel.services, opts); err != nil {
		return err
	}
	return bw.Flush()
}

func runExportJSON(cmd *cobra.Command, _ []string) error {
	if jsonSort != "" {
		if _, err := sortField(jsonSort); err != nil {
			return err
		}
	}
	out := firstNonEmpty(jsonOut, cfg.JSONOut)
	c, err := loadCatalog()
	if err != nil {
		return err
	}
	printLoadSummary(cmd.ErrOrStderr(), c)

	records := export.BuildJSONRecords(c.loaded.Services, c.loaded.VendorOrder, c.metadata)
	if err := export.WriteJSON(out, records); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.KVPanel("JSON экспортирован", []ui.KV{
		{Key: "JSON", Value: out},
		{Key: "Записей", Value: fmt.Sprint(len(records))},
	}, ui.ColorInfo))
	return nil
}

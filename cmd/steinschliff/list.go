package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"steinschliff/internal/catalog"
	"steinschliff/internal/ui"
)

var (
	listSort      string
	listService   string
	listCondition string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the structures table",
	Long: `Print a table of structures, optionally limited to one vendor
(directory key or display name) and one snow condition (key, Russian
name or synonym).`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&listSort, "sort", "temperature", "sort field: name, rating, country, temperature")
	f.StringVarP(&listService, "service", "s", "", "vendor filter, e.g. Ramsau")
	f.StringVarP(&listCondition, "condition", "c", "", "snow condition filter, e.g. green or Зелёный")
	rootCmd.AddCommand(listCmd)
}

// selection is the result of the shared vendor+condition filtering.
type selection struct {
	data     *catalogData
	services catalog.Services
	// empty is set when a condition filter matched nothing.
	empty bool
}

// selectStructures loads the catalog and applies the vendor and condition
// filters used by list and export-csv.
func selectStructures(service, condition string) (*selection, error) {
	c, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	services, err := catalog.SelectServices(c.loaded.Services, c.metadata, service)
	if err != nil {
		return nil, err
	}
	key, err := catalog.ResolveCondition(c.registry, condition)
	if err != nil {
		return nil, err
	}
	if key != "" {
		services = catalog.FilterByCondition(services, key)
	}
	return &selection{data: c, services: services, empty: key != "" && len(services) == 0}, nil
}

func runList(cmd *cobra.Command, _ []string) error {
	field, err := sortField(listSort)
	if err != nil {
		return err
	}
	sel, err := selectStructures(listService, listCondition)
	if err != nil {
		return err
	}
	printLoadSummary(cmd.ErrOrStderr(), sel.data)
	if sel.empty {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Notice(fmt.Sprintf("Не найдено структур с условием '%s'", listCondition)))
		return nil
	}

	title := "Шлифы"
	if listService != "" {
		title += " · " + listService
	}
	if listCondition != "" {
		title += " · " + listCondition
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.StructuresTable(sel.services, ui.ListOptions{
		VendorOrder: sel.data.loaded.VendorOrder,
		Metadata:    sel.data.metadata,
		Conditions:  sel.data.registry,
		SortField:   field,
		Title:       title,
	}))
	return nil
}

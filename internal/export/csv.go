package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"

	"steinschliff/internal/format"
	"steinschliff/internal/model"
	"steinschliff/internal/pipeline"
)

// CSVHeader is the fixed column order of the CSV export.
var CSVHeader = []string{"Сервис", "Имя", "Тип снега", "Условия", "Температура", "Похожие"}

// CSVOptions controls WriteCSV.
type CSVOptions struct {
	VendorOrder []string
	Metadata    map[string]model.ServiceMetadata
	Conditions  format.ConditionNames
	// SortField orders rows within each vendor; empty keeps load order.
	SortField string
}

// WriteCSV writes a header and one row per structure to w.
func WriteCSV(w io.Writer, services Services, opts CSVOptions) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, vendor := range orderedVendors(services, opts.VendorOrder) {
		structures := services[vendor]
		if opts.SortField != "" {
			structures = slices.Clone(structures)
			pipeline.SortStructures(opts.SortField, structures)
		}
		for _, s := range structures {
			row := []string{
				serviceName(s, vendor, opts.Metadata),
				s.Name,
				s.SnowType,
				format.Condition(opts.Conditions, s.Condition),
				format.TemperatureRange(s.Temperature),
				format.List(s.Similars, false),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("write csv row %s: %w", s.Name, err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

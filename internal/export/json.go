package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"steinschliff/internal/model"
)

// Record is one structure in the JSON export.
type Record struct {
	Name     string       `json:"name"`
	Service  string       `json:"service"`
	Country  string       `json:"country"`
	SnowType string       `json:"snow_type"`
	TempMin  *float64     `json:"temp_min"`
	TempMax  *float64     `json:"temp_max"`
	Tags     []model.Item `json:"tags"`
	Similars []model.Item `json:"similars"`
	Features []model.Item `json:"features"`
	Images   []string     `json:"images"`
	FilePath string       `json:"file_path"`
}

// BuildJSONRecords flattens services into one record per structure.
// Temperatures come from the first range; list fields drop null and
// blank entries; missing lists become [].
func BuildJSONRecords(services Services, vendorOrder []string, metadata map[string]model.ServiceMetadata) []Record {
	records := []Record{}
	for _, vendor := range orderedVendors(services, vendorOrder) {
		for _, s := range services[vendor] {
			r := Record{
				Name:     s.Name,
				Service:  serviceName(s, vendor, metadata),
				Country:  s.Country,
				SnowType: strings.TrimSpace(s.SnowType),
				Tags:     model.NonBlank(s.Tags),
				Similars: model.NonBlank(s.Similars),
				Features: model.NonBlank(s.Features),
				Images:   s.Images,
				FilePath: s.FilePath,
			}
			if r.Images == nil {
				r.Images = []string{}
			}
			if tr, ok := s.FirstRange(); ok {
				r.TempMin = tr.Min
				r.TempMax = tr.Max
			}
			records = append(records, r)
		}
	}
	return records
}

// MarshalJSON encodes records as a two-space indented UTF-8 array without
// HTML escaping.
func MarshalJSON(records []Record) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON writes records to path, creating parent directories.
func WriteJSON(path string, records []Record) error {
	data, err := MarshalJSON(records)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

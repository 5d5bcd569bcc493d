package pipeline

import (
	"sort"
	"strings"

	"steinschliff/internal/conditions"
	"steinschliff/internal/format"
	"steinschliff/internal/model"
)

// AnyTemperature is shown for conditions without a temperature range.
const AnyTemperature = "любая"

// StatRow is one line of the condition distribution report.
type StatRow struct {
	Key         string
	Emoji       string
	NameRU      string
	Color       string
	Temperature string
	Count       int
	Percentage  float64
}

// Stats is the condition distribution across all structures.
type Stats struct {
	Total            int
	Counts           map[string]int
	Rows             []StatRow
	WithoutCondition int
}

// ConditionStats counts structures per condition key. Rows are ordered by
// count descending, ties by key.
func ConditionStats(services map[string][]model.StructureInfo, reg *conditions.Registry) Stats {
	st := Stats{Counts: make(map[string]int)}
	for _, structures := range services {
		for _, s := range structures {
			st.Total++
			key := strings.ToLower(strings.TrimSpace(s.Condition))
			if key == "" {
				continue
			}
			st.Counts[key]++
		}
	}

	counted := 0
	for key, n := range st.Counts {
		counted += n
		row := StatRow{
			Key:         key,
			Emoji:       format.ConditionEmoji(key),
			NameRU:      format.Capitalize(key),
			Temperature: AnyTemperature,
			Count:       n,
		}
		if info, ok := reg.Info(key); ok {
			if info.NameRU != "" {
				row.NameRU = info.NameRU
			}
			row.Color = info.Color
			if t := format.TemperatureRange(info.Temperature); t != "" {
				row.Temperature = t
			}
		}
		if st.Total > 0 {
			row.Percentage = float64(n) / float64(st.Total) * 100
		}
		st.Rows = append(st.Rows, row)
	}
	st.WithoutCondition = st.Total - counted

	sort.Slice(st.Rows, func(i, j int) bool {
		if st.Rows[i].Count != st.Rows[j].Count {
			return st.Rows[i].Count > st.Rows[j].Count
		}
		return st.Rows[i].Key < st.Rows[j].Key
	})
	return st
}

package pipeline

import (
	"math"
	"slices"
	"sort"

	"steinschliff/internal/model"
)

// SortFields lists the supported orderings.
var SortFields = []string{"name", "rating", "country", "temperature"}

// ValidSortField reports whether field is one of SortFields.
func ValidSortField(field string) bool {
	return slices.Contains(SortFields, field)
}

// Key is a sort key: a string for generic fields, a number for temperature.
type Key struct {
	Numeric bool
	Num     float64
	Str     string
}

// Less orders numeric keys before string keys, then by value.
func (k Key) Less(o Key) bool {
	if k.Numeric != o.Numeric {
		return k.Numeric
	}
	if k.Numeric {
		return k.Num < o.Num
	}
	return k.Str < o.Str
}

// SortKey computes the ordering key of s for field. Temperature sorts the
// warmest edge first by negating the first range's max; structures without
// one get +Inf and sort last. Other fields compare as plain strings, with
// "" for attributes a structure does not have.
func SortKey(field string, s model.StructureInfo) Key {
	if field == "temperature" {
		if r, ok := s.FirstRange(); ok && r.Max != nil {
			return Key{Numeric: true, Num: -*r.Max}
		}
		return Key{Numeric: true, Num: math.Inf(1)}
	}
	return Key{Str: s.Field(field)}
}

// SortStructures stable-sorts structures in place by field.
func SortStructures(field string, structures []model.StructureInfo) {
	sort.SliceStable(structures, func(i, j int) bool {
		return SortKey(field, structures[i]).Less(SortKey(field, structures[j]))
	})
}

// SortCountries sorts every vendor's structures by field.
func SortCountries(data CountriesData, field string) {
	for _, c := range data.Countries {
		for _, v := range c.Vendors {
			SortStructures(field, v.Structures)
		}
	}
}

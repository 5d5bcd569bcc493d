package pipeline

import (
	"sort"

	"steinschliff/internal/format"
	"steinschliff/internal/model"
)

// VendorView is everything the renderer needs about one vendor, so
// templates never look metadata up again.
type VendorView struct {
	Key           string
	Title         string
	City          string
	Description   string
	DescriptionRU string
	WebsiteURL    string
	VideoURL      string
	Contact       *model.ContactInfo
	Structures    []model.StructureInfo
}

// Heading is the vendor's section heading text: the title, with the city
// in parentheses when set. Table-of-contents anchors derive from it.
func (v *VendorView) Heading() string {
	if v.City == "" {
		return v.Title
	}
	return v.Title + " (" + v.City + ")"
}

// Country groups vendors sharing a country, ordered by vendor key.
type Country struct {
	Name    string
	Vendors []*VendorView
}

// CountriesData is the grouped catalog.
type CountriesData struct {
	Countries map[string]*Country
	// Ordered is the display order: home country, the rest alphabetically,
	// then "Other" when it has vendors.
	Ordered []string
}

// PrepareCountries groups vendors with structures by their metadata
// country. Vendors without metadata or country land in "Other".
func PrepareCountries(services map[string][]model.StructureInfo, metadata map[string]model.ServiceMetadata) CountriesData {
	data := CountriesData{Countries: make(map[string]*Country)}

	keys := make([]string, 0, len(services))
	for k := range services {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		meta, hasMeta := metadata[key]
		country := model.OtherCountry
		if hasMeta && meta.Country != "" {
			country = meta.Country
		}

		view := &VendorView{
			Key:        key,
			Title:      format.Capitalize(key),
			Structures: append([]model.StructureInfo(nil), services[key]...),
		}
		if hasMeta {
			if meta.Name != "" {
				view.Title = meta.Name
			}
			view.City = meta.City
			view.Description = meta.Description
			view.DescriptionRU = meta.DescriptionRU
			view.WebsiteURL = meta.WebsiteURL
			view.VideoURL = meta.VideoURL
			view.Contact = meta.Contact
		}

		c, ok := data.Countries[country]
		if !ok {
			c = &Country{Name: country}
			data.Countries[country] = c
		}
		c.Vendors = append(c.Vendors, view)
	}

	data.Ordered = OrderCountries(data.Countries)
	return data
}

// OrderCountries returns country names in display order.
func OrderCountries(countries map[string]*Country) []string {
	var ordered []string
	if _, ok := countries[model.HomeCountry]; ok {
		ordered = append(ordered, model.HomeCountry)
	}

	rest := make([]string, 0, len(countries))
	for name := range countries {
		if name != model.HomeCountry && name != model.OtherCountry {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	ordered = append(ordered, rest...)

	if other, ok := countries[model.OtherCountry]; ok && len(other.Vendors) > 0 {
		ordered = append(ordered, model.OtherCountry)
	}
	return ordered
}

// DisplayName returns the vendor's metadata name, falling back to its key.
func DisplayName(vendor string, metadata map[string]model.ServiceMetadata) string {
	if m, ok := metadata[vendor]; ok && m.Name != "" {
		return m.Name
	}
	return vendor
}

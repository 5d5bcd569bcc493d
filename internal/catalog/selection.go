// Package catalog narrows the loaded catalog by vendor and snow condition.
package catalog

import (
	"maps"
	"strings"

	"steinschliff/internal/conditions"
	"steinschliff/internal/model"
)

// Services maps vendor key to its structures.
type Services = map[string][]model.StructureInfo

// vendorLookup maps lowercased vendor keys and display names to keys.
func vendorLookup(services Services, metadata map[string]model.ServiceMetadata) map[string]string {
	lookup := make(map[string]string, len(services)+len(metadata))
	for key := range services {
		lookup[strings.ToLower(strings.TrimSpace(key))] = key
	}
	for key, meta := range metadata {
		visible := strings.TrimSpace(meta.Name)
		if visible == "" {
			visible = strings.TrimSpace(key)
		}
		if visible != "" {
			lookup[strings.ToLower(visible)] = key
		}
	}
	return lookup
}

// SelectServices returns the single vendor matching filter by directory key
// or display name, case-insensitively. A blank filter returns a copy of
// services. An unknown vendor is a *model.UserError wrapping ErrNotFound.
func SelectServices(services Services, metadata map[string]model.ServiceMetadata, filter string) (Services, error) {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return maps.Clone(services), nil
	}

	key, ok := vendorLookup(services, metadata)[needle]
	if !ok {
		return nil, model.NewUserError(model.ErrNotFound, "Сервис не найден", "Сервис '%s' не найден", filter)
	}
	structures, ok := services[key]
	if !ok {
		return nil, model.NewUserError(model.ErrNotFound, "Сервис не найден", "Сервис '%s' не найден", filter)
	}
	return Services{key: structures}, nil
}

// FilterByCondition keeps structures whose condition equals key after
// trimming and lowercasing. Vendors left empty are dropped. A blank key
// returns a copy of services.
func FilterByCondition(services Services, key string) Services {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return maps.Clone(services)
	}
	out := make(Services)
	for vendor, structures := range services {
		var kept []model.StructureInfo
		for _, s := range structures {
			if strings.ToLower(strings.TrimSpace(s.Condition)) == key {
				kept = append(kept, s)
			}
		}
		if len(kept) > 0 {
			out[vendor] = kept
		}
	}
	return out
}

// ResolveCondition normalizes user input to a canonical key. Blank input
// resolves to "". Input that does not normalize to a valid key is a
// *model.UserError wrapping ErrInvalidInput, listing allowed keys and the
// closest matches.
func ResolveCondition(reg *conditions.Registry, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	key := reg.Normalize(input)
	if reg.IsValid(key) {
		return key, nil
	}

	msg := "Неизвестное условие '%s'. Допустимые значения: %s"
	args := []any{input, strings.Join(reg.ValidKeys(), ", ")}
	if hints := reg.Suggest(input); len(hints) > 0 {
		msg += ". Возможно, вы имели в виду: %s"
		args = append(args, strings.Join(hints, ", "))
	}
	return "", model.NewUserError(model.ErrInvalidInput, "Неверное условие", msg, args...)
}

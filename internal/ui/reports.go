package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"steinschliff/internal/conditions"
	"steinschliff/internal/format"
	"steinschliff/internal/model"
	"steinschliff/internal/pipeline"
)

func newTable(border lipgloss.Color, headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// ValidationSummary renders the per-file outcome counts of a load run.
func ValidationSummary(st pipeline.LoadStats) string {
	total := st.ValidFiles + st.WarningFiles + st.ErrorFiles
	t := newTable(ColorInfo, "Статус", "Кол-во", "Доля").
		Row("✓ Успешно", strconv.Itoa(st.ValidFiles), percent(st.ValidFiles, total)).
		Row("⚠ Предупреждения", strconv.Itoa(st.WarningFiles), percent(st.WarningFiles, total)).
		Row("✗ Ошибки", strconv.Itoa(st.ErrorFiles), percent(st.ErrorFiles, total))
	return Panel("Результаты валидации YAML-файлов", t.Render(), ColorInfo)
}

// MetadataWarnings lists vendors whose _meta.yaml was empty, invalid or
// unusable. Returns "" when there is nothing to report.
func MetadataWarnings(rep pipeline.MetaReport) string {
	var items []string
	for _, v := range rep.Empty {
		items = append(items, v+": пустой _meta.yaml")
	}
	for _, v := range rep.Partial {
		items = append(items, v+": _meta.yaml с ошибками, использованы значения по умолчанию")
	}
	for _, v := range sortedKeys(rep.Errors) {
		items = append(items, v+": "+rep.Errors[v])
	}
	if len(items) == 0 {
		return ""
	}
	return ItemsPanel("Предупреждения метаданных сервисов", items, ColorWarning)
}

// StatsTable renders the condition distribution with a totals row.
func StatsTable(st pipeline.Stats) string {
	t := newTable(ColorAccent, "Условие", "Emoji", "Название", "Температура", "Количество", "%")
	for _, r := range st.Rows {
		t.Row(strings.ToUpper(r.Key), r.Emoji, r.NameRU, r.Temperature,
			strconv.Itoa(r.Count), fmt.Sprintf("%.1f%%", r.Percentage))
	}
	if st.WithoutCondition > 0 {
		t.Row("-", "", "Без условия", "", strconv.Itoa(st.WithoutCondition),
			percent(st.WithoutCondition, st.Total))
	}
	t.Row("ВСЕГО", "", "", "", strconv.Itoa(st.Total), "100.0%")
	return titleStyle.Render("📊 Статистика по условиям снега") + "\n" + t.Render()
}

// VendorRow is one line of VendorsTable.
type VendorRow struct {
	Key        string
	Name       string
	Country    string
	City       string
	Structures int
}

// VendorsTable renders the vendor directories with their metadata and
// structure counts.
func VendorsTable(rows []VendorRow) string {
	t := newTable(ColorAccent, "Ключ", "Название", "Страна", "Город", "Шлифов")
	total := 0
	for _, r := range rows {
		t.Row(r.Key, r.Name, r.Country, r.City, strconv.Itoa(r.Structures))
		total += r.Structures
	}
	t.Row("ВСЕГО", "", "", "", strconv.Itoa(total))
	return t.Render()
}

// ListOptions controls StructuresTable.
type ListOptions struct {
	VendorOrder []string
	Metadata    map[string]model.ServiceMetadata
	Conditions  format.ConditionNames
	SortField   string
	Title       string
}

// StructuresTable renders one row per structure, vendors in VendorOrder
// (remaining vendors sorted after), structures sorted by SortField.
func StructuresTable(services map[string][]model.StructureInfo, opts ListOptions) string {
	t := newTable(ColorAccent, "Сервис", "Имя", "Тип снега", "Условия", "Температура", "Похожие")
	for _, vendor := range vendorOrder(services, opts.VendorOrder) {
		items := append([]model.StructureInfo(nil), services[vendor]...)
		pipeline.SortStructures(opts.SortField, items)
		visible := pipeline.DisplayName(vendor, opts.Metadata)
		for _, s := range items {
			t.Row(visible, s.Name, s.SnowType,
				format.Condition(opts.Conditions, s.Condition),
				format.TemperatureRange(s.Temperature),
				format.List(s.Similars, false))
		}
	}
	out := t.Render()
	if opts.Title != "" {
		out = titleStyle.Render(opts.Title) + "\n" + out
	}
	return out
}

func vendorOrder(services map[string][]model.StructureInfo, order []string) []string {
	seen := make(map[string]bool, len(services))
	out := make([]string, 0, len(services))
	for _, v := range order {
		if _, ok := services[v]; ok && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	for _, v := range sortedKeys(services) {
		if !seen[v] {
			out = append(out, v)
		}
	}
	return out
}

// ConditionsReport renders a conditions Check run: one panel per file with
// problems, then the summary.
func ConditionsReport(rep conditions.Report) string {
	byFile := make(map[string][]conditions.Problem)
	for _, p := range rep.Problems {
		byFile[p.File] = append(byFile[p.File], p)
	}

	var parts []string
	for _, file := range sortedKeys(byFile) {
		t := newTable(ColorError, "Поле", "Текст")
		for _, p := range byFile[file] {
			t.Row(p.Field, p.Message)
		}
		parts = append(parts, Panel("Ошибки валидации в файле: "+file, t.Render(), ColorError))
	}

	invalid := rep.Files - rep.Valid
	summary := newTable(ColorInfo, "Статус", "Кол-во", "Доля").
		Row("✓ Валидные", strconv.Itoa(rep.Valid), percent(rep.Valid, rep.Files)).
		Row("✗ С ошибками", strconv.Itoa(invalid), percent(invalid, rep.Files))
	parts = append(parts, Panel("Результаты валидации Snow Conditions", summary.Render(), ColorInfo))
	return strings.Join(parts, "\n")
}
